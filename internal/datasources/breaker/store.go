// Package breaker guards an embedding store with circuit breakers so that an
// unreachable store fails fast instead of stalling every feed request.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/indievibes/vibefeed/internal/datasources"
	"github.com/indievibes/vibefeed/internal/domain"
	gobreaker "github.com/sony/gobreaker/v2"
)

var _ datasources.EmbeddingStore = (*Store)(nil)

type Config struct {
	// MaxRequests is the number of probe requests allowed while half-open.
	MaxRequests uint32
	// Interval resets the failure counts while closed.
	Interval time.Duration
	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration
	// MinRequests is the sample size needed before the failure ratio is considered.
	MinRequests uint32
	// FailureRatio opens the breaker once reached.
	FailureRatio float64
}

func DefaultConfig() Config {
	return Config{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Store wraps an EmbeddingStore. Calls rejected by an open breaker are
// reported as domain.ErrUpstream.
type Store struct {
	inner datasources.EmbeddingStore
	fetch *gobreaker.CircuitBreaker[domain.VibeEmbedding]
	query *gobreaker.CircuitBreaker[[]domain.ScoredGame]
}

func New(inner datasources.EmbeddingStore, config Config, logger *slog.Logger) *Store {
	return &Store{
		inner: inner,
		fetch: gobreaker.NewCircuitBreaker[domain.VibeEmbedding](settings("embedding-fetch", config, logger)),
		query: gobreaker.NewCircuitBreaker[[]domain.ScoredGame](settings("embedding-query", config, logger)),
	}
}

func settings(name string, config Config, logger *slog.Logger) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= config.FailureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("embedding store circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: isSuccessful,
	}
}

// isSuccessful keeps answers that the store gave deliberately from counting
// against its health.
func isSuccessful(err error) bool {
	return err == nil ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, context.Canceled)
}

func (s *Store) FetchEmbedding(
	ctx context.Context,
	gameID domain.GameID,
	facet domain.Facet,
	modelID string,
) (domain.VibeEmbedding, error) {
	emb, err := s.fetch.Execute(func() (domain.VibeEmbedding, error) {
		return s.inner.FetchEmbedding(ctx, gameID, facet, modelID)
	})
	return emb, mapBreakerError(err)
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
	results, err := s.query.Execute(func() ([]domain.ScoredGame, error) {
		return s.inner.QuerySimilar(ctx, facet, modelID, vector, excludeGameIDs, threshold, limit)
	})
	return results, mapBreakerError(err)
}

func mapBreakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	return err
}
