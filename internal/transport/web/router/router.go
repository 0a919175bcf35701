package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/indievibes/vibefeed/internal/command"
	"github.com/indievibes/vibefeed/internal/datasources"
	"github.com/indievibes/vibefeed/internal/domain"
	"github.com/indievibes/vibefeed/internal/metrics"
	"github.com/indievibes/vibefeed/internal/ratelimit"
	"github.com/indievibes/vibefeed/internal/transport/web/controller"
)

// Commands are the operations exposed over HTTP.
type Commands struct {
	FetchGame   command.Command[domain.GameID, domain.Game]
	FetchGames  command.Command[[]domain.GameID, []domain.Game]
	FindSimilar command.Command[command.FindSimilarGamesRequest, []domain.SimilarityCandidate]
	ComposeFeed command.Command[command.ComposeFeedRequest, command.ComposeFeedResponse]
	SubmitGames command.Command[command.SubmitGamesRequest, command.SubmitGamesResult]
	ImportGames command.Command[command.SubmitGamesRequest, command.SubmitGamesResult]
	SearchGames command.Command[command.SearchGamesRequest, []command.SearchGamesResult]
}

func MakeRouter(
	commands Commands,
	preferences datasources.UserPreferencesGetter,
	limiter *ratelimit.Limiter,
	m *metrics.Metrics,
	rssFeedBaseURL, rssFeedAuthorName, rssFeedAuthorEmail string,
	cacheMaxAge time.Duration,
	authMiddleware func(http.Handler) http.Handler,
) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(requestMiddleware(m))
	r.Use(corsMiddleware)
	r.Use(authMiddleware)

	limited := rateLimitMiddleware(limiter, m)

	// Fixed paths are registered ahead of /games/{game_id} so they are never
	// read as ids.
	r.Handle("/games/batch", limited(controller.GamesBatch{
		Fetcher: commands.FetchGames,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/games/submit", limited(controller.GamesSubmit{
		Submitter: commands.SubmitGames,
		Importer:  commands.ImportGames,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/games/search", limited(controller.GamesSearch{
		Searcher: commands.SearchGames,
	})).Methods(http.MethodPost, http.MethodOptions)

	r.Handle("/games/{game_id}", controller.GameGet{
		Fetcher:     commands.FetchGame,
		CacheMaxAge: cacheMaxAge,
	}).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/games/{game_id}/similar", limited(controller.SimilarGamesList{
		Finder:      commands.FindSimilar,
		CacheMaxAge: cacheMaxAge,
	})).Methods(http.MethodGet, http.MethodOptions)

	r.Handle("/feed", limited(controller.Feed{
		Composer:    commands.ComposeFeed,
		Preferences: preferences,
	})).Methods(http.MethodGet, http.MethodOptions)

	rssFeeds := []controller.FeedRSS{
		{
			Composer:        commands.ComposeFeed,
			FeedHostname:    rssFeedBaseURL,
			FeedPath:        "/feed/rss",
			FeedAuthorName:  rssFeedAuthorName,
			FeedAuthorEmail: rssFeedAuthorEmail,
			CacheMaxAge:     cacheMaxAge,
		},
	}

	for _, feed := range rssFeeds {
		r.Handle(feed.FeedPath, limited(feed)).Methods(http.MethodGet, http.MethodOptions)
	}

	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	return r, nil
}
