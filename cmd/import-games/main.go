// Command import-games queues catalog ids from a CSV export for ingestion.
//
// The CSV needs a header row with an appid column; other columns are ignored.
// It reads the file named by the first argument, or stdin when none is given.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/indievibes/vibefeed/internal/app"
	"github.com/indievibes/vibefeed/internal/command"
	"github.com/indievibes/vibefeed/internal/datasources/mysql"
	"github.com/indievibes/vibefeed/internal/domain"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx := context.Background()

	logLevel := slog.LevelInfo
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if err := logLevel.UnmarshalText([]byte(lvl)); err != nil {
			fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL: %s\n", lvl)
			os.Exit(1)
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	ctx = domain.ContextWithLogger(ctx, logger)

	input := io.Reader(os.Stdin)
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			logger.ErrorContext(ctx, "unable to open CSV", "path", os.Args[1], "error", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		input = f
	}

	result, err := run(ctx, input)
	if err != nil {
		logger.ErrorContext(ctx, "game import failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "game import completed", "accepted", result.Accepted, "queued", result.Queued)
}

func run(ctx context.Context, input io.Reader) (command.SubmitGamesResult, error) {
	ids, err := command.ParseAppIDCSV(input)
	if err != nil {
		return command.SubmitGamesResult{}, fmt.Errorf("parsing CSV: %w", err)
	}

	db, err := mysql.Connect(ctx, app.MustGetEnvAsString(ctx, "MYSQL_URI"))
	if err != nil {
		return command.SubmitGamesResult{}, fmt.Errorf("connecting to MySQL: %w", err)
	}
	defer func() { _ = db.Close() }()

	importer := &command.ImportGames{Submit: &command.SubmitGames{Queue: mysql.New(db)}}
	return importer.Execute(ctx, command.SubmitGamesRequest{
		AppIDs:      ids,
		SubmittedBy: app.GetEnvAsStringOrDefault("IMPORT_SUBMITTED_BY", "csv-import"),
	})
}
