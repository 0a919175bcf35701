package router

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/indievibes/vibefeed/internal/command"
	"github.com/indievibes/vibefeed/internal/domain"
	"github.com/indievibes/vibefeed/internal/metrics"
	"github.com/indievibes/vibefeed/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commandFunc[Req, Res any] func(ctx context.Context, req Req) (Res, error)

func (f commandFunc[Req, Res]) Execute(ctx context.Context, req Req) (Res, error) {
	return f(ctx, req)
}

func testRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := domain.ContextWithLogger(req.Context(), slog.New(slog.DiscardHandler))
	return req.WithContext(ctx)
}

func testCommands() Commands {
	return Commands{
		FetchGame: commandFunc[domain.GameID, domain.Game](
			func(_ context.Context, id domain.GameID) (domain.Game, error) {
				return domain.Game{ID: id, Title: "Game " + id.String()}, nil
			},
		),
		FetchGames: commandFunc[[]domain.GameID, []domain.Game](
			func(_ context.Context, ids []domain.GameID) ([]domain.Game, error) {
				games := make([]domain.Game, 0, len(ids))
				for _, id := range ids {
					games = append(games, domain.Game{ID: id})
				}
				return games, nil
			},
		),
		FindSimilar: commandFunc[command.FindSimilarGamesRequest, []domain.SimilarityCandidate](
			func(_ context.Context, _ command.FindSimilarGamesRequest) ([]domain.SimilarityCandidate, error) {
				return []domain.SimilarityCandidate{}, nil
			},
		),
		ComposeFeed: commandFunc[command.ComposeFeedRequest, command.ComposeFeedResponse](
			func(_ context.Context, _ command.ComposeFeedRequest) (command.ComposeFeedResponse, error) {
				return command.ComposeFeedResponse{}, nil
			},
		),
		SubmitGames: commandFunc[command.SubmitGamesRequest, command.SubmitGamesResult](
			func(_ context.Context, req command.SubmitGamesRequest) (command.SubmitGamesResult, error) {
				return command.SubmitGamesResult{Accepted: len(req.AppIDs), Queued: len(req.AppIDs)}, nil
			},
		),
		ImportGames: commandFunc[command.SubmitGamesRequest, command.SubmitGamesResult](
			func(_ context.Context, req command.SubmitGamesRequest) (command.SubmitGamesResult, error) {
				return command.SubmitGamesResult{Accepted: len(req.AppIDs)}, nil
			},
		),
		SearchGames: commandFunc[command.SearchGamesRequest, []command.SearchGamesResult](
			func(_ context.Context, _ command.SearchGamesRequest) ([]command.SearchGamesResult, error) {
				return []command.SearchGamesResult{}, nil
			},
		),
	}
}

func testRouter(t *testing.T, limit int) http.Handler {
	t.Helper()

	m := metrics.New()
	limiter := ratelimit.New(ratelimit.Config{Window: time.Minute, Limit: limit, SweepInterval: time.Minute})

	h, err := MakeRouter(
		testCommands(),
		nil,
		limiter,
		m,
		"https://vibes.example.com", "Indie Vibes", "feed@vibes.example.com",
		time.Minute,
		NewAuthMiddleware(nil),
	)
	require.NoError(t, err)
	return h
}

func TestMakeRouter_Routes(t *testing.T) {
	h := testRouter(t, 100)

	cases := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantBody   string
	}{
		{name: "game_get", method: http.MethodGet, target: "/games/413150", wantStatus: http.StatusOK, wantBody: `"title":"Game 413150"`},
		{name: "game_get_invalid", method: http.MethodGet, target: "/games/abc", wantStatus: http.StatusBadRequest},
		{name: "batch_not_read_as_id", method: http.MethodPost, target: "/games/batch", body: `{"ids":[1,2]}`, wantStatus: http.StatusOK, wantBody: `"data"`},
		{name: "submit", method: http.MethodPost, target: "/games/submit", body: `{"appids":[1]}`, wantStatus: http.StatusAccepted, wantBody: `"queued":1`},
		{name: "search", method: http.MethodPost, target: "/games/search", body: `{"text":"cozy"}`, wantStatus: http.StatusOK},
		{name: "similar", method: http.MethodGet, target: "/games/413150/similar?facet=tone", wantStatus: http.StatusOK, wantBody: `"source_game_id":413150`},
		{name: "feed", method: http.MethodGet, target: "/feed", wantStatus: http.StatusOK, wantBody: `"items":[]`},
		{name: "feed_rss", method: http.MethodGet, target: "/feed/rss", wantStatus: http.StatusOK, wantBody: "<rss"},
		{name: "wrong_method", method: http.MethodDelete, target: "/feed", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, testRequest(tc.method, tc.target, tc.body))

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus != http.StatusMethodNotAllowed {
				assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			}
			if tc.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestMakeRouter_RateLimit(t *testing.T) {
	h := testRouter(t, 2)

	do := func(method, target, client string) *httptest.ResponseRecorder {
		req := testRequest(method, target, "")
		req.Header.Set("X-Forwarded-For", client)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := do(http.MethodGet, "/feed", "203.0.113.7")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	second := do(http.MethodGet, "/games/1/similar", "203.0.113.7")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	rejected := do(http.MethodGet, "/feed", "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, rejected.Code)
	assert.Equal(t, "60", rejected.Header().Get("Retry-After"))
	assert.Equal(t, "0", rejected.Header().Get("X-RateLimit-Remaining"))
	assert.JSONEq(t, `{"message":"rate limited"}`, rejected.Body.String())

	// Another client has its own window.
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/feed", "198.51.100.1").Code)

	// Single game lookups and preflights are never counted.
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/games/1", "203.0.113.7").Code)
	assert.Equal(t, http.StatusOK, do(http.MethodOptions, "/feed", "203.0.113.7").Code)

	metricsRec := do(http.MethodGet, "/metrics", "203.0.113.7")
	assert.Equal(t, http.StatusOK, metricsRec.Code)
	assert.Contains(t, metricsRec.Body.String(), `vibefeed_rate_limit_decisions_total{decision="rejected"} 1`)
	assert.Contains(t, metricsRec.Body.String(), `vibefeed_http_requests_total{method="GET",route="/feed",status="429"} 1`)
}

func TestMakeRouter_RequestID(t *testing.T) {
	h := testRouter(t, 100)

	rec := httptest.NewRecorder()
	req := testRequest(http.MethodGet, "/games/1", "")
	req.Header.Set("X-Request-ID", "req-123")
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, testRequest(http.MethodGet, "/games/1", ""))
	assert.Len(t, rec.Header().Get("X-Request-ID"), 36)
}

func TestNewAuthMiddleware(t *testing.T) {
	cases := []struct {
		name       string
		validators []AuthValidator
		wantStatus int
		wantUserID string
	}{
		{
			name:       "no_validators_anonymous",
			wantStatus: http.StatusOK,
		},
		{
			name: "validator_not_applicable",
			validators: []AuthValidator{
				func(_ *http.Request) (*AuthResult, error) { return nil, nil },
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "validator_succeeds",
			validators: []AuthValidator{
				func(_ *http.Request) (*AuthResult, error) { return nil, nil },
				func(_ *http.Request) (*AuthResult, error) { return &AuthResult{UserID: "auth0|user-1"}, nil },
			},
			wantStatus: http.StatusOK,
			wantUserID: "auth0|user-1",
		},
		{
			name: "validator_fails",
			validators: []AuthValidator{
				func(_ *http.Request) (*AuthResult, error) { return nil, errors.New("invalid JWT token") },
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID = domain.UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			NewAuthMiddleware(tc.validators)(next).ServeHTTP(rec, testRequest(http.MethodGet, "/feed", ""))

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantUserID, gotUserID)
		})
	}
}
