package command

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/indievibes/vibefeed/internal/datasources"
	"github.com/indievibes/vibefeed/internal/domain"
	"github.com/indievibes/vibefeed/internal/metrics"
	"golang.org/x/sync/errgroup"
)

// FindSimilarGamesRequest asks for games similar to GameID along one facet.
type FindSimilarGamesRequest struct {
	GameID    domain.GameID
	Facet     domain.Facet
	Threshold float64
	// Limit <= 0 selects the configured default; larger values are clamped.
	Limit int
}

type FindSimilarGamesConfig struct {
	// ModelID selects which embedding space the matcher compares in.
	ModelID      string
	DefaultLimit int
	MaxLimit     int
}

func DefaultFindSimilarGamesConfig(modelID string) FindSimilarGamesConfig {
	return FindSimilarGamesConfig{
		ModelID:      modelID,
		DefaultLimit: 10,
		MaxLimit:     50,
	}
}

// FacetResult is one facet's outcome from ExecuteFacets.
type FacetResult struct {
	Candidates []domain.SimilarityCandidate
	Err        error
}

// FindSimilarGames ranks games by vibe similarity to a source game within a
// single facet and embedding model.
type FindSimilarGames struct {
	Store   datasources.EmbeddingStore
	Config  FindSimilarGamesConfig
	Metrics *metrics.Metrics
}

var _ Command[FindSimilarGamesRequest, []domain.SimilarityCandidate] = (*FindSimilarGames)(nil)

func NewFindSimilarGames(
	store datasources.EmbeddingStore,
	config FindSimilarGamesConfig,
	m *metrics.Metrics,
) *FindSimilarGames {
	return &FindSimilarGames{
		Store:   store,
		Config:  config,
		Metrics: m,
	}
}

func (c *FindSimilarGames) Execute(
	ctx context.Context,
	req FindSimilarGamesRequest,
) ([]domain.SimilarityCandidate, error) {
	limit, err := c.validate(req.GameID, req.Facet, req.Threshold, req.Limit)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	candidates, err := c.findSimilar(ctx, req.GameID, req.Facet, req.Threshold, limit)
	c.Metrics.ObserveSimilarityQuery(string(req.Facet), outcomeLabel(err), time.Since(start))
	return candidates, err
}

// ExecuteFacets runs one independent query per distinct facet. A failure in
// one facet is reported in its FacetResult and never affects the others.
func (c *FindSimilarGames) ExecuteFacets(
	ctx context.Context,
	gameID domain.GameID,
	facets []domain.Facet,
	threshold float64,
	limit int,
) map[domain.Facet]FacetResult {
	facets = distinctFacets(facets)
	results := make([]FacetResult, len(facets))

	var g errgroup.Group
	g.SetLimit(max(len(facets), 1))
	for i, facet := range facets {
		g.Go(func() error {
			candidates, err := c.Execute(ctx, FindSimilarGamesRequest{
				GameID:    gameID,
				Facet:     facet,
				Threshold: threshold,
				Limit:     limit,
			})
			results[i] = FacetResult{Candidates: candidates, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	byFacet := make(map[domain.Facet]FacetResult, len(facets))
	for i, facet := range facets {
		byFacet[facet] = results[i]
	}
	return byFacet
}

func (c *FindSimilarGames) validate(
	gameID domain.GameID,
	facet domain.Facet,
	threshold float64,
	limit int,
) (int, error) {
	if gameID <= 0 {
		return 0, fmt.Errorf("%w: game id [%d] must be positive", domain.ErrValidation, gameID)
	}
	if err := domain.ValidateFacet(facet); err != nil {
		return 0, err
	}
	// Written this way round so NaN is rejected too.
	if !(threshold >= 0 && threshold <= 1) {
		return 0, fmt.Errorf("%w: threshold [%v] must be within [0, 1]", domain.ErrValidation, threshold)
	}

	switch {
	case limit <= 0:
		limit = c.Config.DefaultLimit
	case limit > c.Config.MaxLimit:
		limit = c.Config.MaxLimit
	}
	return limit, nil
}

func (c *FindSimilarGames) findSimilar(
	ctx context.Context,
	gameID domain.GameID,
	facet domain.Facet,
	threshold float64,
	limit int,
) ([]domain.SimilarityCandidate, error) {
	source, err := retryOnce(ctx, func() (domain.VibeEmbedding, error) {
		return c.Store.FetchEmbedding(ctx, gameID, facet, c.Config.ModelID)
	})
	if err != nil {
		return nil, storeError(ctx, fmt.Sprintf("fetching [%s] embedding of game [%d]", facet, gameID), err)
	}

	if source.Facet != facet || source.ModelID != c.Config.ModelID {
		return nil, fmt.Errorf("%w: stored embedding is [%s/%s], requested [%s/%s]",
			domain.ErrIncompatibleFacet, source.Facet, source.ModelID, facet, c.Config.ModelID)
	}
	if len(source.Vector) == 0 {
		return nil, fmt.Errorf("%w: [%s] embedding of game [%d] has no vector", domain.ErrNotFound, facet, gameID)
	}

	// One extra row keeps a full page if the store ignores the exclusion.
	scored, err := retryOnce(ctx, func() ([]domain.ScoredGame, error) {
		return c.Store.QuerySimilar(ctx, facet, c.Config.ModelID, source.Vector,
			[]domain.GameID{gameID}, threshold, limit+1)
	})
	if err != nil {
		return nil, storeError(ctx, fmt.Sprintf("querying games similar to [%d] by [%s]", gameID, facet), err)
	}

	return rankCandidates(scored, gameID, facet, threshold, limit), nil
}

// rankCandidates re-applies the ranking rules to store output rather than
// trusting the store's ordering and filtering.
func rankCandidates(
	scored []domain.ScoredGame,
	sourceID domain.GameID,
	facet domain.Facet,
	threshold float64,
	limit int,
) []domain.SimilarityCandidate {
	best := make(map[domain.GameID]float64, len(scored))
	for _, s := range scored {
		if s.GameID == sourceID || s.GameID <= 0 || math.IsNaN(s.Score) {
			continue
		}
		score := clampUnit(s.Score)
		if score < threshold {
			continue
		}
		if prev, ok := best[s.GameID]; !ok || score > prev {
			best[s.GameID] = score
		}
	}

	candidates := make([]domain.SimilarityCandidate, 0, len(best))
	for id, score := range best {
		candidates = append(candidates, domain.SimilarityCandidate{
			GameID:       id,
			Facet:        facet,
			Score:        score,
			SourceGameID: sourceID,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].GameID < candidates[j].GameID
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// retryOnce repeats op a single time after a transient failure.
func retryOnce[T any](ctx context.Context, op func() (T, error)) (T, error) {
	v, err := op()
	if err == nil || errors.Is(err, domain.ErrNotFound) || ctx.Err() != nil {
		return v, err
	}

	domain.LoggerFromContext(ctx).DebugContext(ctx, "retrying upstream call", "error", err)
	return op()
}

func storeError(ctx context.Context, action string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUpstream):
		return fmt.Errorf("%s: %w", action, err)
	case ctx.Err() != nil:
		return fmt.Errorf("%s: %w", action, ctx.Err())
	default:
		return fmt.Errorf("%w: %s: %w", domain.ErrUpstream, action, err)
	}
}

func clampUnit(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func distinctFacets(facets []domain.Facet) []domain.Facet {
	seen := make(map[domain.Facet]bool, len(facets))
	out := make([]domain.Facet, 0, len(facets))
	for _, f := range facets {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrIncompatibleFacet):
		return "rejected"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
