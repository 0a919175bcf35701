package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/indievibes/vibefeed/internal/command"
	"github.com/indievibes/vibefeed/internal/datasources"
	"github.com/indievibes/vibefeed/internal/datasources/breaker"
	"github.com/indievibes/vibefeed/internal/datasources/cached"
	"github.com/indievibes/vibefeed/internal/datasources/mysql"
	"github.com/indievibes/vibefeed/internal/datasources/pgvector"
	"github.com/indievibes/vibefeed/internal/datasources/pinecone"
	"github.com/indievibes/vibefeed/internal/datasources/voyageai"
	"github.com/indievibes/vibefeed/internal/domain"
	"github.com/indievibes/vibefeed/internal/metrics"
	"github.com/indievibes/vibefeed/internal/ratelimit"
	"github.com/indievibes/vibefeed/internal/transport/web/router"
	"github.com/indievibes/vibefeed/internal/transport/web/server"
)

type Component interface {
	Run(ctx context.Context) error
}

func Setup(ctx context.Context) ([]Component, error) {
	catalog, err := setupCatalogRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up catalog repository: %w", err)
	}

	store, err := setupEmbeddingStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up embedding store: %w", err)
	}

	embedder, err := setupEmbedder(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up embedder: %w", err)
	}

	authMiddleware, err := setupAuthMiddleware(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up auth middleware: %w", err)
	}

	feedConfig, err := ComposeFeedConfigFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading feed config: %w", err)
	}

	rateLimitConfig, err := RateLimitConfigFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading rate limit config: %w", err)
	}

	m := metrics.New()
	limiter := ratelimit.New(rateLimitConfig)

	matcherConfig := command.DefaultFindSimilarGamesConfig(MustGetEnvAsString(ctx, "EMBEDDING_MODEL_ID"))
	matcher := command.NewFindSimilarGames(store, matcherConfig, m)

	submitGames := &command.SubmitGames{Queue: catalog}

	commands := router.Commands{
		FetchGame:   &command.FetchGame{Games: catalog},
		FetchGames:  &command.FetchGames{Games: catalog},
		FindSimilar: matcher,
		ComposeFeed: command.NewComposeFeed(matcher, catalog, feedConfig, m),
		SubmitGames: submitGames,
		ImportGames: &command.ImportGames{Submit: submitGames},
		SearchGames: &command.SearchGames{
			Embedder: embedder,
			Store:    store,
			Games:    catalog,
			Config:   matcherConfig,
		},
	}

	httpRouter, err := router.MakeRouter(
		commands,
		catalog,
		limiter,
		m,
		MustGetEnvAsString(ctx, "RSS_FEED_BASE_URL"),
		MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_NAME"),
		MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_EMAIL"),
		MustGetEnvAsDuration(ctx, "HTTP_CACHE_MAX_AGE"),
		authMiddleware,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create HTTP router: %w", err)
	}

	return []Component{
		limiter,
		&server.Server{
			TLSDisabled:       MustGetEnvAsBoolean(ctx, "HTTP_TLS_DISABLED"),
			TLSDisabledPort:   MustGetEnvAsInt(ctx, "PORT"),
			AutocertHostnames: GetEnvAsStringsOrDefault("HTTP_AUTOCERT_HOSTNAMES", nil),
			Router:            httpRouter,
		},
	}, nil
}

func setupCatalogRepository(ctx context.Context) (datasources.CatalogRepository, error) {
	db, err := mysql.Connect(ctx, MustGetEnvAsString(ctx, "MYSQL_URI"))
	if err != nil {
		return nil, fmt.Errorf("connecting to MySQL: %w", err)
	}

	if GetEnvAsBooleanOrDefault(ctx, "MYSQL_MIGRATE", false) {
		if err := mysql.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("migrating MySQL schema: %w", err)
		}
	}

	return mysql.New(db), nil
}

// setupEmbeddingStore selects the vector store driver and wraps it with the
// source embedding cache and a circuit breaker.
func setupEmbeddingStore(ctx context.Context) (datasources.EmbeddingStore, error) {
	var store datasources.EmbeddingStore
	switch driver := MustGetEnvAsString(ctx, "EMBEDDING_STORE_DRIVER"); driver {
	case "null":
		return datasources.NullEmbeddingStore{}, nil
	case "pinecone":
		client, err := pinecone.NewClient(
			ctx,
			MustGetEnvAsString(ctx, "PINECONE_API_KEY"),
			MustGetEnvAsString(ctx, "PINECONE_INDEX_NAME"),
		)
		if err != nil {
			return nil, fmt.Errorf("connecting to pinecone: %w", err)
		}
		store = client
	case "pgvector":
		pool, err := pgvector.Connect(ctx, MustGetEnvAsString(ctx, "PGVECTOR_DATABASE_URL"))
		if err != nil {
			return nil, fmt.Errorf("connecting to pgvector: %w", err)
		}
		store = pgvector.New(pool)
	default:
		return nil, fmt.Errorf("unknown embedding store driver [%s]", driver)
	}

	logger := domain.LoggerFromContext(ctx)
	return cached.New(breaker.New(store, BreakerConfigFromEnv(ctx), logger), EmbeddingCacheConfigFromEnv(ctx)), nil
}

func setupEmbedder(ctx context.Context) (datasources.Embedder, error) {
	switch driver := GetEnvAsStringOrDefault("EMBEDDER_DRIVER", "null"); driver {
	case "null":
		return datasources.NullEmbedder{}, nil
	case "voyageai":
		opts := []voyageai.Option{
			voyageai.WithDimension(GetEnvAsIntOrDefault(ctx, "VOYAGEAI_DIMENSION", voyageai.DefaultDimension)),
			voyageai.WithHTTPClient(&http.Client{
				Timeout: GetEnvAsDurationOrDefault(ctx, "VOYAGEAI_TIMEOUT", 10*time.Second),
			}),
		}
		if baseURL := GetEnvAsStringOrDefault("VOYAGEAI_BASE_URL", ""); baseURL != "" {
			opts = append(opts, voyageai.WithBaseURL(baseURL))
		}
		return voyageai.NewClient(
			MustGetEnvAsString(ctx, "VOYAGEAI_API_KEY"),
			MustGetEnvAsString(ctx, "EMBEDDING_MODEL_ID"),
			opts...,
		), nil
	default:
		return nil, fmt.Errorf("unknown embedder driver [%s]", driver)
	}
}

func setupAuthMiddleware(ctx context.Context) (func(http.Handler) http.Handler, error) {
	var validators []router.AuthValidator

	for _, driver := range GetEnvAsStringsOrDefault("AUTH_DRIVERS", nil) {
		switch driver {
		case "auth0":
			v, err := router.NewAuth0Validator(
				MustGetEnvAsString(ctx, "AUTH0_DOMAIN"),
				MustGetEnvAsString(ctx, "AUTH0_AUDIENCE"),
			)
			if err != nil {
				return nil, fmt.Errorf("creating Auth0 validator: %w", err)
			}
			validators = append(validators, v)
		default:
			return nil, fmt.Errorf("unknown auth driver [%s]", driver)
		}
	}

	return router.NewAuthMiddleware(validators), nil
}
