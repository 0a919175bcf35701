package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/indievibes/vibefeed/internal/datasources"
	"github.com/indievibes/vibefeed/internal/domain"
)

const maxSearchTextLength = 2000

type SearchGamesRequest struct {
	Text  string
	Facet domain.Facet
	Limit int
}

type SearchGamesResult struct {
	Game  domain.Game `json:"game"`
	Score float64     `json:"score"`
}

// SearchGames finds games whose vibe along one facet matches a free-text
// description, by embedding the text into the same space as the stored vectors.
type SearchGames struct {
	Embedder datasources.Embedder
	Store    datasources.SimilarGamesQuerier
	Games    datasources.GameFetcher
	Config   FindSimilarGamesConfig
}

var _ Command[SearchGamesRequest, []SearchGamesResult] = (*SearchGames)(nil)

func (c *SearchGames) Execute(ctx context.Context, req SearchGamesRequest) ([]SearchGamesResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: search text is empty", domain.ErrValidation)
	}
	if len(text) > maxSearchTextLength {
		return nil, fmt.Errorf("%w: search text exceeds %d bytes", domain.ErrValidation, maxSearchTextLength)
	}

	facet := req.Facet
	if facet == "" {
		facet = domain.FacetTone
	}
	if err := domain.ValidateFacet(facet); err != nil {
		return nil, err
	}

	// Text vectors are only comparable with stored vectors of the same model.
	if c.Embedder.ModelID() != c.Config.ModelID {
		return nil, fmt.Errorf("%w: embedder model [%s] does not match store model [%s]",
			domain.ErrIncompatibleFacet, c.Embedder.ModelID(), c.Config.ModelID)
	}

	limit := req.Limit
	switch {
	case limit <= 0:
		limit = c.Config.DefaultLimit
	case limit > c.Config.MaxLimit:
		limit = c.Config.MaxLimit
	}

	vector, err := retryOnce(ctx, func() ([]float32, error) {
		return c.Embedder.EmbedText(ctx, text)
	})
	if err != nil {
		return nil, storeError(ctx, "embedding search text", err)
	}
	if len(vector) == 0 {
		return []SearchGamesResult{}, nil
	}

	scored, err := retryOnce(ctx, func() ([]domain.ScoredGame, error) {
		return c.Store.QuerySimilar(ctx, facet, c.Config.ModelID, vector, nil, 0, limit)
	})
	if err != nil {
		return nil, storeError(ctx, fmt.Sprintf("searching [%s] embeddings", facet), err)
	}

	candidates := rankCandidates(scored, 0, facet, 0, limit)
	if len(candidates) == 0 {
		return []SearchGamesResult{}, nil
	}

	ids := make([]domain.GameID, 0, len(candidates))
	for _, cand := range candidates {
		ids = append(ids, cand.GameID)
	}
	games, err := c.Games.FetchGamesByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetching matched games: %w", err)
	}

	byID := make(map[domain.GameID]domain.Game, len(games))
	for _, game := range games {
		byID[game.ID] = game
	}

	results := make([]SearchGamesResult, 0, len(candidates))
	for _, cand := range candidates {
		if game, ok := byID[cand.GameID]; ok {
			results = append(results, SearchGamesResult{Game: game, Score: cand.Score})
		}
	}
	return results, nil
}
