// Package pgvector serves vibe embeddings from Postgres using the pgvector extension.
//
// Expected schema:
//
//	CREATE TABLE vibe_embeddings (
//	    game_id     BIGINT      NOT NULL,
//	    facet       TEXT        NOT NULL,
//	    model_id    TEXT        NOT NULL,
//	    embedding   vector      NOT NULL,
//	    source_type TEXT        NOT NULL DEFAULT '',
//	    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE INDEX ON vibe_embeddings (game_id, facet, model_id, created_at DESC);
//
// Older rows for the same (game_id, facet, model_id) are history; only the newest is matched.
package pgvector

import (
	"context"
	"errors"
	"fmt"

	"github.com/indievibes/vibefeed/internal/datasources"
	"github.com/indievibes/vibefeed/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
)

var _ datasources.EmbeddingStore = (*Store)(nil)

type Store struct {
	db *pgxpool.Pool
}

// Connect opens a pool with the vector types registered on every connection.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres url: %w", err)
	}
	cfg.AfterConnect = pgxvec.RegisterTypes
	cfg.MaxConns = 10

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("checking postgres connection: %w", err)
	}

	return pool, nil
}

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) FetchEmbedding(
	ctx context.Context,
	gameID domain.GameID,
	facet domain.Facet,
	modelID string,
) (domain.VibeEmbedding, error) {
	var (
		vec pgvector.Vector
		emb = domain.VibeEmbedding{GameID: gameID}
	)

	err := s.db.QueryRow(ctx, `
		SELECT facet, model_id, embedding, source_type, created_at
		FROM vibe_embeddings
		WHERE game_id = $1 AND facet = $2 AND model_id = $3
		ORDER BY created_at DESC
		LIMIT 1`,
		int64(gameID), string(facet), modelID,
	).Scan(&emb.Facet, &emb.ModelID, &vec, &emb.SourceType, &emb.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.VibeEmbedding{}, fmt.Errorf("no [%s] embedding for game [%d]: %w", facet, gameID, domain.ErrNotFound)
		}
		return domain.VibeEmbedding{}, fmt.Errorf("fetching embedding: %w", err)
	}

	emb.Vector = vec.Slice()
	return emb, nil
}

// QuerySimilar ranks by cosine similarity, 1 - (embedding <=> query).
func (s *Store) QuerySimilar(
	ctx context.Context,
	facet domain.Facet,
	modelID string,
	vector []float32,
	excludeGameIDs []domain.GameID,
	threshold float64,
	limit int,
) ([]domain.ScoredGame, error) {
	if limit <= 0 || len(vector) == 0 {
		return nil, nil
	}

	exclude := make([]int64, 0, len(excludeGameIDs))
	for _, id := range excludeGameIDs {
		exclude = append(exclude, int64(id))
	}

	rows, err := s.db.Query(ctx, `
		SELECT game_id, score FROM (
			SELECT DISTINCT ON (e.game_id) e.game_id, 1 - (e.embedding <=> $1) AS score
			FROM vibe_embeddings e
			WHERE e.facet = $2 AND e.model_id = $3 AND NOT (e.game_id = ANY($4))
			ORDER BY e.game_id, e.created_at DESC
		) current
		WHERE score >= $5
		ORDER BY score DESC, game_id ASC
		LIMIT $6`,
		pgvector.NewVector(vector), string(facet), modelID, exclude, threshold, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying similar embeddings: %w", err)
	}
	defer rows.Close()

	var results []domain.ScoredGame
	for rows.Next() {
		var (
			id    int64
			score float64
		)
		if err := rows.Scan(&id, &score); err != nil {
			return nil, fmt.Errorf("scanning similar embedding: %w", err)
		}
		results = append(results, domain.ScoredGame{GameID: domain.GameID(id), Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating similar embeddings: %w", err)
	}

	return results, nil
}
