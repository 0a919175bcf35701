package datasources

import (
	"context"
	"fmt"

	"github.com/indievibes/vibefeed/internal/domain"
)

// EmbeddingStore is the vector-search capable store holding vibe embeddings.
// It is read-only from this service's point of view.
type EmbeddingStore interface {
	EmbeddingFetcher
	SimilarGamesQuerier
}

// EmbeddingFetcher returns the current embedding of a game for one facet and model.
// Implementations wrap domain.ErrNotFound when none exists.
type EmbeddingFetcher interface {
	FetchEmbedding(
		ctx context.Context,
		gameID domain.GameID,
		facet domain.Facet,
		modelID string,
	) (domain.VibeEmbedding, error)
}

// SimilarGamesQuerier ranks stored embeddings of the same facet and model against vector.
// Results are sorted by descending score and contain no excluded ids.
type SimilarGamesQuerier interface {
	QuerySimilar(
		ctx context.Context,
		facet domain.Facet,
		modelID string,
		vector []float32,
		excludeGameIDs []domain.GameID,
		threshold float64,
		limit int,
	) ([]domain.ScoredGame, error)
}

// NullEmbeddingStore is an EmbeddingStore with no embeddings.
type NullEmbeddingStore struct{}

var _ EmbeddingStore = NullEmbeddingStore{}

func (NullEmbeddingStore) FetchEmbedding(
	_ context.Context,
	gameID domain.GameID,
	facet domain.Facet,
	_ string,
) (domain.VibeEmbedding, error) {
	return domain.VibeEmbedding{}, fmt.Errorf("no [%s] embedding for game [%d]: %w", facet, gameID, domain.ErrNotFound)
}

func (NullEmbeddingStore) QuerySimilar(
	_ context.Context,
	_ domain.Facet,
	_ string,
	_ []float32,
	_ []domain.GameID,
	_ float64,
	_ int,
) ([]domain.ScoredGame, error) {
	return nil, nil
}
