// Package cached adds a short-lived cache of source embeddings in front of an
// embedding store. Feed requests for the same seed re-read the same vectors
// once per facet, so caching them removes most fetch round trips.
package cached

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/indievibes/vibefeed/internal/datasources"
	"github.com/indievibes/vibefeed/internal/domain"
	"golang.org/x/sync/singleflight"
)

var _ datasources.EmbeddingStore = (*Store)(nil)

type Config struct {
	MaxEntries int
	TTL        time.Duration
	// LoadTimeout bounds a shared load. It is detached from every caller's
	// context, so one caller going away does not fail the others.
	LoadTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxEntries:  4096,
		TTL:         10 * time.Minute,
		LoadTimeout: 10 * time.Second,
	}
}

// Store caches successful FetchEmbedding results. Concurrent misses for the same
// key share a single load. QuerySimilar is passed through unchanged.
type Store struct {
	inner       datasources.EmbeddingStore
	lru         *expirable.LRU[string, domain.VibeEmbedding]
	group       singleflight.Group
	loadTimeout time.Duration
}

func New(inner datasources.EmbeddingStore, config Config) *Store {
	loadTimeout := config.LoadTimeout
	if loadTimeout <= 0 {
		loadTimeout = DefaultConfig().LoadTimeout
	}

	return &Store{
		inner:       inner,
		lru:         expirable.NewLRU[string, domain.VibeEmbedding](config.MaxEntries, nil, config.TTL),
		loadTimeout: loadTimeout,
	}
}

func cacheKey(gameID domain.GameID, facet domain.Facet, modelID string) string {
	return fmt.Sprintf("%d|%s|%s", gameID, facet, modelID)
}

func (s *Store) FetchEmbedding(
	ctx context.Context,
	gameID domain.GameID,
	facet domain.Facet,
	modelID string,
) (domain.VibeEmbedding, error) {
	key := cacheKey(gameID, facet, modelID)
	if emb, ok := s.lru.Get(key); ok {
		return emb, nil
	}

	loads := s.group.DoChan(key, func() (any, error) {
		if emb, ok := s.lru.Get(key); ok {
			return emb, nil
		}

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.loadTimeout)
		defer cancel()

		emb, err := s.inner.FetchEmbedding(loadCtx, gameID, facet, modelID)
		if err != nil {
			return domain.VibeEmbedding{}, err
		}
		s.lru.Add(key, emb)
		return emb, nil
	})

	select {
	case <-ctx.Done():
		return domain.VibeEmbedding{}, ctx.Err()
	case res := <-loads:
		if res.Err != nil {
			return domain.VibeEmbedding{}, res.Err
		}
		return res.Val.(domain.VibeEmbedding), nil
	}
}

func (s *Store) QuerySimilar(
	ctx context.Context,
	facet domain.Facet,
	modelID string,
	vector []float32,
	excludeGameIDs []domain.GameID,
	threshold float64,
	limit int,
) ([]domain.ScoredGame, error) {
	return s.inner.QuerySimilar(ctx, facet, modelID, vector, excludeGameIDs, threshold, limit)
}

// Len returns the number of cached embeddings.
func (s *Store) Len() int {
	return s.lru.Len()
}
