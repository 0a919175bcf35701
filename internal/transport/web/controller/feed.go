package controller

import (
	"net/http"
	"time"

	"github.com/indievibes/vibefeed/internal/command"
	"github.com/indievibes/vibefeed/internal/datasources"
	"github.com/indievibes/vibefeed/internal/domain"
)

type Feed struct {
	Composer    command.Command[command.ComposeFeedRequest, command.ComposeFeedResponse]
	Preferences datasources.UserPreferencesGetter
}

type FeedResponse struct {
	Items      []FeedItemResponse `json:"items"`
	NextCursor *string            `json:"next_cursor"`
}

// FeedItemResponse is the wire form of one feed entry. Exactly one of Game,
// Enrichment and Collection is set, matching Kind.
type FeedItemResponse struct {
	Kind             domain.FeedItemKind `json:"kind"`
	Key              string              `json:"key"`
	Score            float64             `json:"score"`
	ProvenanceGameID domain.GameID       `json:"provenance_game_id,omitempty"`

	Game       *domain.Game                `json:"game,omitempty"`
	Candidate  *domain.SimilarityCandidate `json:"candidate,omitempty"`
	Enrichment *EnrichmentResponse         `json:"enrichment,omitempty"`
	Collection *CollectionResponse         `json:"collection,omitempty"`
}

type EnrichmentResponse struct {
	ID          int64                 `json:"id"`
	Kind        domain.EnrichmentKind `json:"kind"`
	Title       string                `json:"title"`
	Body        string                `json:"body,omitempty"`
	URL         string                `json:"url,omitempty"`
	PublishedAt *time.Time            `json:"published_at,omitempty"`
	Extra       map[string]string     `json:"extra,omitempty"`
}

type CollectionResponse struct {
	ID      int64           `json:"id"`
	Slug    string          `json:"slug"`
	Name    string          `json:"name"`
	GameIDs []domain.GameID `json:"game_ids"`
}

func (c Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	seed, err := parseSeed(q)
	if err != nil {
		writeError(w, r, "invalid feed seed", err)
		return
	}

	pageSize, err := parsePageSize(q)
	if err != nil {
		writeError(w, r, "invalid feed page size", err)
		return
	}

	resp, err := c.Composer.Execute(r.Context(), command.ComposeFeedRequest{
		SeedGameID:  seed,
		PageSize:    pageSize,
		Cursor:      q.Get("cursor"),
		Preferences: loadPreferences(r, c.Preferences),
	})
	if err != nil {
		writeError(w, r, "unable to compose feed", err)
		return
	}

	writeJSON(w, r, http.StatusOK, FeedResponse{
		Items:      renderFeedEntries(resp.Items),
		NextCursor: resp.NextCursor,
	})
}

// loadPreferences returns the signed-in user's stored preferences. Anonymous
// users, and lookups that fail, get an unpersonalised feed.
func loadPreferences(r *http.Request, getter datasources.UserPreferencesGetter) domain.UserPreferences {
	ctx := r.Context()
	userID := domain.UserIDFromContext(ctx)
	if userID == "" || getter == nil {
		return domain.UserPreferences{}
	}

	prefs, err := getter.GetUserPreferences(ctx, userID)
	if err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "unable to load user preferences, serving unpersonalised feed", "error", err)
		return domain.UserPreferences{}
	}
	return prefs
}

func renderFeedEntries(entries []domain.FeedEntry) []FeedItemResponse {
	items := make([]FeedItemResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, renderFeedEntry(e))
	}
	return items
}

func renderFeedEntry(e domain.FeedEntry) FeedItemResponse {
	resp := FeedItemResponse{
		Kind:             e.Item.Kind(),
		Key:              e.Item.IdentityKey(),
		Score:            e.Score,
		ProvenanceGameID: e.Item.ProvenanceGameID(),
	}

	switch item := e.Item.(type) {
	case domain.GameFind:
		resp.Game = &item.Game
		resp.Candidate = &item.Candidate
	case domain.EnrichmentItem:
		enrichment := EnrichmentResponse{
			ID:    item.ID,
			Kind:  item.ContentKind,
			Title: item.Title,
			Body:  item.Body,
			URL:   item.URL,
			Extra: item.Extra,
		}
		if !item.PublishedAt.IsZero() {
			enrichment.PublishedAt = &item.PublishedAt
		}
		resp.Enrichment = &enrichment
	case domain.CollectionPin:
		gameIDs := item.GameIDs
		if gameIDs == nil {
			gameIDs = []domain.GameID{}
		}
		resp.Collection = &CollectionResponse{
			ID:      item.ID,
			Slug:    item.Slug,
			Name:    item.Name,
			GameIDs: gameIDs,
		}
	}

	return resp
}
