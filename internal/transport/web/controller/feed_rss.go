package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/feeds"
	"github.com/indievibes/vibefeed/internal/command"
	"github.com/indievibes/vibefeed/internal/domain"
)

// FeedRSS publishes the first page of the home feed as RSS.
type FeedRSS struct {
	Composer        command.Command[command.ComposeFeedRequest, command.ComposeFeedResponse]
	FeedHostname    string
	FeedPath        string
	FeedAuthorName  string
	FeedAuthorEmail string
	CacheMaxAge     time.Duration
	Now             func() time.Time
}

func (c FeedRSS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	resp, err := c.Composer.Execute(r.Context(), command.ComposeFeedRequest{})
	if err != nil {
		writeError(w, r, "unable to compose feed for RSS", err)
		return
	}

	feed := &feeds.Feed{
		Title:       "Indie Vibes",
		Link:        &feeds.Link{Href: c.FeedHostname + c.FeedPath},
		Description: "Indie games matched by vibe, with clips and curated collections",
		Author:      &feeds.Author{Name: c.FeedAuthorName, Email: c.FeedAuthorEmail},
		Created:     now(),
	}

	for _, e := range resp.Items {
		feed.Items = append(feed.Items, c.rssItem(e, now()))
	}

	rss, err := feed.ToRss()
	if err != nil {
		writeError(w, r, "unable to format feed as RSS", err)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Header().Set("Cache-Control", cacheControl(c.CacheMaxAge))

	if _, err := w.Write([]byte(rss)); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write feed to response", "error", err)
	}
}

func (c FeedRSS) rssItem(e domain.FeedEntry, now time.Time) *feeds.Item {
	item := &feeds.Item{
		Id:          e.Item.IdentityKey(),
		IsPermaLink: "false",
		Created:     now,
	}

	switch v := e.Item.(type) {
	case domain.GameFind:
		item.Title = v.Game.Title
		item.Link = &feeds.Link{Href: c.FeedHostname + "/games/" + v.Game.ID.String()}
		item.Description = v.Game.ShortDescription
		if !v.Game.UpdatedAt.IsZero() {
			item.Created = v.Game.UpdatedAt
		}
	case domain.EnrichmentItem:
		item.Title = v.Title
		item.Link = &feeds.Link{Href: v.URL}
		item.Description = v.Body
		if !v.PublishedAt.IsZero() {
			item.Created = v.PublishedAt
		}
	case domain.CollectionPin:
		item.Title = v.Name
		item.Link = &feeds.Link{Href: c.FeedHostname + "/collections/" + v.Slug}
		item.Description = "Curated collection of " + strconv.Itoa(len(v.GameIDs)) + " games"
	}

	return item
}
