package app

import (
	"context"
	"fmt"

	"github.com/indievibes/vibefeed/internal/command"
	"github.com/indievibes/vibefeed/internal/datasources/breaker"
	"github.com/indievibes/vibefeed/internal/datasources/cached"
	"github.com/indievibes/vibefeed/internal/domain"
	"github.com/indievibes/vibefeed/internal/ratelimit"
)

// ComposeFeedConfigFromEnv overlays FEED_* tunables on the default feed config.
func ComposeFeedConfigFromEnv(ctx context.Context) (command.ComposeFeedConfig, error) {
	config := command.DefaultComposeFeedConfig()

	if names := GetEnvAsStringsOrDefault("FEED_FACETS", nil); names != nil {
		facets := make([]domain.Facet, 0, len(names))
		for _, name := range names {
			facet := domain.Facet(name)
			if err := domain.ValidateFacet(facet); err != nil {
				return command.ComposeFeedConfig{}, fmt.Errorf("parsing FEED_FACETS: %w", err)
			}
			facets = append(facets, facet)
		}
		config.Facets = facets
	}

	config.Threshold = GetEnvAsFloatOrDefault(ctx, "FEED_SIMILARITY_THRESHOLD", config.Threshold)
	if config.Threshold < 0 || config.Threshold > 1 {
		return command.ComposeFeedConfig{}, fmt.Errorf("FEED_SIMILARITY_THRESHOLD [%v] outside [0, 1]", config.Threshold)
	}

	config.CandidatesPerFacet = GetEnvAsIntOrDefault(ctx, "FEED_CANDIDATES_PER_FACET", config.CandidatesPerFacet)
	config.HomeSeedCount = GetEnvAsIntOrDefault(ctx, "FEED_HOME_SEED_COUNT", config.HomeSeedCount)
	config.EnrichmentLimit = GetEnvAsIntOrDefault(ctx, "FEED_ENRICHMENT_LIMIT", config.EnrichmentLimit)
	config.Personalization.BonusPerMatch = GetEnvAsFloatOrDefault(
		ctx, "FEED_PERSONALIZATION_BONUS", config.Personalization.BonusPerMatch)
	config.Personalization.BonusCap = GetEnvAsFloatOrDefault(
		ctx, "FEED_PERSONALIZATION_BONUS_CAP", config.Personalization.BonusCap)
	if config.Personalization.BonusPerMatch <= 0 {
		return command.ComposeFeedConfig{}, fmt.Errorf(
			"FEED_PERSONALIZATION_BONUS [%v] must be positive", config.Personalization.BonusPerMatch)
	}
	if config.Personalization.BonusCap < 0 {
		return command.ComposeFeedConfig{}, fmt.Errorf(
			"FEED_PERSONALIZATION_BONUS_CAP [%v] must not be negative", config.Personalization.BonusCap)
	}

	return config, nil
}

func RateLimitConfigFromEnv(ctx context.Context) (ratelimit.Config, error) {
	config := ratelimit.DefaultConfig()
	config.Limit = GetEnvAsIntOrDefault(ctx, "RATE_LIMIT_REQUESTS", config.Limit)
	if config.Limit < 1 {
		return ratelimit.Config{}, fmt.Errorf("RATE_LIMIT_REQUESTS [%d] must be at least 1", config.Limit)
	}
	config.Window = GetEnvAsDurationOrDefault(ctx, "RATE_LIMIT_WINDOW", config.Window)
	if config.Window <= 0 {
		return ratelimit.Config{}, fmt.Errorf("RATE_LIMIT_WINDOW [%v] must be positive", config.Window)
	}
	config.SweepInterval = GetEnvAsDurationOrDefault(ctx, "RATE_LIMIT_SWEEP_INTERVAL", config.SweepInterval)
	return config, nil
}

func EmbeddingCacheConfigFromEnv(ctx context.Context) cached.Config {
	config := cached.DefaultConfig()
	config.MaxEntries = GetEnvAsIntOrDefault(ctx, "EMBEDDING_CACHE_MAX_ENTRIES", config.MaxEntries)
	config.TTL = GetEnvAsDurationOrDefault(ctx, "EMBEDDING_CACHE_TTL", config.TTL)
	config.LoadTimeout = GetEnvAsDurationOrDefault(ctx, "EMBEDDING_CACHE_LOAD_TIMEOUT", config.LoadTimeout)
	return config
}

func BreakerConfigFromEnv(ctx context.Context) breaker.Config {
	config := breaker.DefaultConfig()
	config.Timeout = GetEnvAsDurationOrDefault(ctx, "EMBEDDING_STORE_BREAKER_TIMEOUT", config.Timeout)
	config.FailureRatio = GetEnvAsFloatOrDefault(ctx, "EMBEDDING_STORE_BREAKER_FAILURE_RATIO", config.FailureRatio)
	return config
}
