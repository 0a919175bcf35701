package app

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/indievibes/vibefeed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return domain.ContextWithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func TestMustGetEnvAsString(t *testing.T) {
	ctx := testContext()

	t.Setenv("VIBEFEED_TEST_STRING", "value")
	assert.Equal(t, "value", MustGetEnvAsString(ctx, "VIBEFEED_TEST_STRING"))

	assert.Panics(t, func() {
		MustGetEnvAsString(ctx, "VIBEFEED_TEST_MISSING")
	})
}

func TestMustGetEnvAsStrings(t *testing.T) {
	t.Setenv("VIBEFEED_TEST_LIST", " a.example.com, ,b.example.com,")
	assert.Equal(t, []string{"a.example.com", "b.example.com"}, MustGetEnvAsStrings(testContext(), "VIBEFEED_TEST_LIST"))
}

func TestMustGetEnvAsBoolean(t *testing.T) {
	ctx := testContext()

	cases := []struct {
		name      string
		value     string
		expected  bool
		wantPanic bool
	}{
		{name: "true", value: "true", expected: true},
		{name: "upper_false", value: "FALSE", expected: false},
		{name: "invalid", value: "yes", wantPanic: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("VIBEFEED_TEST_BOOL", tc.value)
			if tc.wantPanic {
				assert.Panics(t, func() { MustGetEnvAsBoolean(ctx, "VIBEFEED_TEST_BOOL") })
				return
			}
			assert.Equal(t, tc.expected, MustGetEnvAsBoolean(ctx, "VIBEFEED_TEST_BOOL"))
		})
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	ctx := testContext()

	assert.Equal(t, 7, GetEnvAsIntOrDefault(ctx, "VIBEFEED_TEST_UNSET_INT", 7))
	assert.Equal(t, time.Minute, GetEnvAsDurationOrDefault(ctx, "VIBEFEED_TEST_UNSET_DURATION", time.Minute))
	assert.InDelta(t, 0.4, GetEnvAsFloatOrDefault(ctx, "VIBEFEED_TEST_UNSET_FLOAT", 0.4), 1e-9)
	assert.Equal(t, "null", GetEnvAsStringOrDefault("VIBEFEED_TEST_UNSET_STRING", "null"))
	assert.Nil(t, GetEnvAsStringsOrDefault("VIBEFEED_TEST_UNSET_LIST", nil))

	t.Setenv("VIBEFEED_TEST_INT", "12")
	t.Setenv("VIBEFEED_TEST_DURATION", "90s")
	t.Setenv("VIBEFEED_TEST_FLOAT", "0.25")
	assert.Equal(t, 12, GetEnvAsIntOrDefault(ctx, "VIBEFEED_TEST_INT", 7))
	assert.Equal(t, 90*time.Second, GetEnvAsDurationOrDefault(ctx, "VIBEFEED_TEST_DURATION", time.Minute))
	assert.InDelta(t, 0.25, GetEnvAsFloatOrDefault(ctx, "VIBEFEED_TEST_FLOAT", 0.4), 1e-9)

	t.Setenv("VIBEFEED_TEST_BAD_INT", "twelve")
	assert.Panics(t, func() { GetEnvAsIntOrDefault(ctx, "VIBEFEED_TEST_BAD_INT", 7) })
}

func TestComposeFeedConfigFromEnv(t *testing.T) {
	ctx := testContext()

	t.Run("defaults", func(t *testing.T) {
		config, err := ComposeFeedConfigFromEnv(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Facet{domain.FacetTone, domain.FacetAesthetic, domain.FacetMechanics}, config.Facets)
		assert.InDelta(t, 0.4, config.Threshold, 1e-9)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("FEED_FACETS", "tone,soundtrack")
		t.Setenv("FEED_SIMILARITY_THRESHOLD", "0.55")
		t.Setenv("FEED_HOME_SEED_COUNT", "5")

		config, err := ComposeFeedConfigFromEnv(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Facet{domain.FacetTone, "soundtrack"}, config.Facets)
		assert.InDelta(t, 0.55, config.Threshold, 1e-9)
		assert.Equal(t, 5, config.HomeSeedCount)
	})

	t.Run("invalid_facet", func(t *testing.T) {
		t.Setenv("FEED_FACETS", "Tone!")

		_, err := ComposeFeedConfigFromEnv(ctx)
		require.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("threshold_out_of_range", func(t *testing.T) {
		t.Setenv("FEED_SIMILARITY_THRESHOLD", "1.5")

		_, err := ComposeFeedConfigFromEnv(ctx)
		require.Error(t, err)
	})

	t.Run("personalization_overrides", func(t *testing.T) {
		t.Setenv("FEED_PERSONALIZATION_BONUS", "0.1")
		t.Setenv("FEED_PERSONALIZATION_BONUS_CAP", "0")

		config, err := ComposeFeedConfigFromEnv(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 0.1, config.Personalization.BonusPerMatch, 1e-9)
		assert.InDelta(t, 0, config.Personalization.BonusCap, 1e-9)
	})

	invalidPersonalization := []struct {
		name  string
		key   string
		value string
	}{
		{name: "negative_bonus_cap", key: "FEED_PERSONALIZATION_BONUS_CAP", value: "-1"},
		{name: "zero_bonus", key: "FEED_PERSONALIZATION_BONUS", value: "0"},
		{name: "negative_bonus", key: "FEED_PERSONALIZATION_BONUS", value: "-0.05"},
	}
	for _, tc := range invalidPersonalization {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := ComposeFeedConfigFromEnv(ctx)
			require.ErrorContains(t, err, tc.key)
		})
	}
}

func TestRateLimitConfigFromEnv(t *testing.T) {
	ctx := testContext()

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_REQUESTS", "120")

		config, err := RateLimitConfigFromEnv(ctx)
		require.NoError(t, err)
		assert.Equal(t, 120, config.Limit)
		assert.Equal(t, time.Minute, config.Window)
	})

	cases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero_limit", key: "RATE_LIMIT_REQUESTS", value: "0"},
		{name: "negative_limit", key: "RATE_LIMIT_REQUESTS", value: "-5"},
		{name: "zero_window", key: "RATE_LIMIT_WINDOW", value: "0s"},
		{name: "negative_window", key: "RATE_LIMIT_WINDOW", value: "-1m"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := RateLimitConfigFromEnv(ctx)
			require.ErrorContains(t, err, tc.key)
		})
	}
}
