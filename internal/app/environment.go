package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/indievibes/vibefeed/internal/domain"
)

func MustGetEnvAsString(ctx context.Context, name string) string {
	s, exists := os.LookupEnv(name)
	if !exists {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "environment variable missing", "variable_name", name)
		panic(fmt.Sprintf("missing environment variable [%s]", name))
	}

	return s
}

// MustGetEnvAsStrings splits a comma separated variable, dropping blank entries.
func MustGetEnvAsStrings(ctx context.Context, name string) []string {
	return splitList(MustGetEnvAsString(ctx, name))
}

func MustGetEnvAsInt(ctx context.Context, name string) int {
	return parseIntEnv(ctx, name, MustGetEnvAsString(ctx, name))
}

func MustGetEnvAsBoolean(ctx context.Context, name string) bool {
	return parseBooleanEnv(ctx, name, MustGetEnvAsString(ctx, name))
}

func MustGetEnvAsDuration(ctx context.Context, name string) time.Duration {
	return parseDurationEnv(ctx, name, MustGetEnvAsString(ctx, name))
}

func GetEnvAsStringOrDefault(name, def string) string {
	if s, exists := os.LookupEnv(name); exists && s != "" {
		return s
	}
	return def
}

func GetEnvAsStringsOrDefault(name string, def []string) []string {
	s, exists := os.LookupEnv(name)
	if !exists || strings.TrimSpace(s) == "" {
		return def
	}
	return splitList(s)
}

func GetEnvAsIntOrDefault(ctx context.Context, name string, def int) int {
	s, exists := os.LookupEnv(name)
	if !exists || s == "" {
		return def
	}
	return parseIntEnv(ctx, name, s)
}

func GetEnvAsBooleanOrDefault(ctx context.Context, name string, def bool) bool {
	s, exists := os.LookupEnv(name)
	if !exists || s == "" {
		return def
	}
	return parseBooleanEnv(ctx, name, s)
}

func GetEnvAsDurationOrDefault(ctx context.Context, name string, def time.Duration) time.Duration {
	s, exists := os.LookupEnv(name)
	if !exists || s == "" {
		return def
	}
	return parseDurationEnv(ctx, name, s)
}

func GetEnvAsFloatOrDefault(ctx context.Context, name string, def float64) float64 {
	s, exists := os.LookupEnv(name)
	if !exists || s == "" {
		return def
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to parse environment variable as float",
			"variable_name", name,
			"variable_value", s,
		)
		panic(fmt.Sprintf("unable to parse environment variable as float [%s]: %s", name, s))
	}

	return v
}

func parseIntEnv(ctx context.Context, name, s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to parse environment variable as integer",
			"variable_name", name,
			"variable_value", s,
		)
		panic(fmt.Sprintf("unable to parse environment variable as integer [%s]: %s", name, s))
	}

	return v
}

func parseBooleanEnv(ctx context.Context, name, s string) bool {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	default:
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to parse environment variable as boolean ('true'/'false')",
			"variable_name", name,
			"variable_value", s,
		)
		panic(fmt.Sprintf("unable to parse environment variable as boolean ('true'/'false') [%s]: %s", name, s))
	}
}

func parseDurationEnv(ctx context.Context, name, s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to parse environment variable as duration",
			"variable_name", name,
			"variable_value", s,
		)
		panic(fmt.Sprintf("unable to parse environment variable as duration [%s]: %s", name, s))
	}

	return duration
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
