package command

import (
	"context"
	"fmt"

	"github.com/indievibes/vibefeed/internal/datasources"
	"github.com/indievibes/vibefeed/internal/domain"
)

// MaxBatchGameIDs caps a batch lookup after deduplication.
const MaxBatchGameIDs = 60

type FetchGame struct {
	Games datasources.GameFetcher
}

var _ Command[domain.GameID, domain.Game] = (*FetchGame)(nil)

func (c *FetchGame) Execute(ctx context.Context, id domain.GameID) (domain.Game, error) {
	if id <= 0 {
		return domain.Game{}, fmt.Errorf("%w: game id [%d] must be positive", domain.ErrValidation, id)
	}

	games, err := c.Games.FetchGamesByID(ctx, []domain.GameID{id})
	if err != nil {
		return domain.Game{}, fmt.Errorf("fetching game [%d]: %w", id, err)
	}
	if len(games) == 0 {
		return domain.Game{}, fmt.Errorf("game [%d]: %w", id, domain.ErrNotFound)
	}

	return games[0], nil
}

// FetchGames looks up several games at once. Unknown ids are left out of the
// result, which keeps the order of first appearance in the request.
type FetchGames struct {
	Games datasources.GameFetcher
}

var _ Command[[]domain.GameID, []domain.Game] = (*FetchGames)(nil)

func (c *FetchGames) Execute(ctx context.Context, ids []domain.GameID) ([]domain.Game, error) {
	ids, err := NormalizeGameIDs(ids, MaxBatchGameIDs)
	if err != nil {
		return nil, err
	}

	games, err := c.Games.FetchGamesByID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetching %d games: %w", len(ids), err)
	}
	if games == nil {
		games = []domain.Game{}
	}

	return games, nil
}

// NormalizeGameIDs removes duplicate ids, keeping first appearances, and checks
// that the remaining ids are positive and number between 1 and maxIDs.
func NormalizeGameIDs(ids []domain.GameID, maxIDs int) ([]domain.GameID, error) {
	seen := make(map[domain.GameID]bool, len(ids))
	out := make([]domain.GameID, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, fmt.Errorf("%w: game id [%d] must be positive", domain.ErrValidation, id)
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no game ids given", domain.ErrValidation)
	}
	if len(out) > maxIDs {
		return nil, fmt.Errorf("%w: %d distinct game ids exceeds the limit of %d",
			domain.ErrValidation, len(out), maxIDs)
	}

	return out, nil
}
