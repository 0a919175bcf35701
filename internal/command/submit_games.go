package command

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/indievibes/vibefeed/internal/datasources"
	"github.com/indievibes/vibefeed/internal/domain"
)

// MaxSubmittedAppIDs caps one submission after deduplication.
const MaxSubmittedAppIDs = 1000

type SubmitGamesRequest struct {
	AppIDs      []domain.GameID
	SubmittedBy string
}

type SubmitGamesResult struct {
	// Accepted is the number of distinct ids in the request.
	Accepted int `json:"accepted"`
	// Queued is how many of them were not already waiting for ingestion.
	Queued int `json:"queued"`
}

// SubmitGames hands catalog ids to the ingestion pipeline's queue.
type SubmitGames struct {
	Queue datasources.GameSubmissionEnqueuer
}

var _ Command[SubmitGamesRequest, SubmitGamesResult] = (*SubmitGames)(nil)

func (c *SubmitGames) Execute(ctx context.Context, req SubmitGamesRequest) (SubmitGamesResult, error) {
	ids, err := NormalizeGameIDs(req.AppIDs, MaxSubmittedAppIDs)
	if err != nil {
		return SubmitGamesResult{}, err
	}

	submittedBy := req.SubmittedBy
	if submittedBy == "" {
		submittedBy = "anonymous"
	}

	queued, err := c.Queue.EnqueueGameSubmissions(ctx, ids, submittedBy)
	if err != nil {
		return SubmitGamesResult{}, fmt.Errorf("enqueueing %d game submissions: %w", len(ids), err)
	}

	domain.LoggerFromContext(ctx).InfoContext(ctx, "games submitted for ingestion",
		"accepted", len(ids), "queued", queued, "submittedBy", submittedBy)

	return SubmitGamesResult{Accepted: len(ids), Queued: queued}, nil
}

// ImportGames queues every id of a CSV import. An import with no usable ids
// queues nothing, and imports larger than MaxSubmittedAppIDs are submitted in
// consecutive chunks.
type ImportGames struct {
	Submit *SubmitGames
}

var _ Command[SubmitGamesRequest, SubmitGamesResult] = (*ImportGames)(nil)

func (c *ImportGames) Execute(ctx context.Context, req SubmitGamesRequest) (SubmitGamesResult, error) {
	seen := make(map[domain.GameID]bool, len(req.AppIDs))
	ids := make([]domain.GameID, 0, len(req.AppIDs))
	for _, id := range req.AppIDs {
		if id > 0 && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	var total SubmitGamesResult
	for start := 0; start < len(ids); start += MaxSubmittedAppIDs {
		end := min(start+MaxSubmittedAppIDs, len(ids))

		result, err := c.Submit.Execute(ctx, SubmitGamesRequest{
			AppIDs:      ids[start:end],
			SubmittedBy: req.SubmittedBy,
		})
		if err != nil {
			return total, fmt.Errorf("importing ids %d to %d of %d: %w", start+1, end, len(ids), err)
		}
		total.Accepted += result.Accepted
		total.Queued += result.Queued
	}

	return total, nil
}

// ParseAppIDCSV reads catalog ids from CSV with a header row containing an
// "appid" column (any case). Rows whose appid cell is blank or not a positive
// integer are skipped. It fails only when the column is missing or the input
// is not CSV at all.
func ParseAppIDCSV(r io.Reader) ([]domain.GameID, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: csv has no header row", domain.ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading csv header: %w", domain.ErrValidation, err)
	}

	column := -1
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		if strings.EqualFold(strings.TrimSpace(name), "appid") {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, fmt.Errorf("%w: csv has no appid column", domain.ErrValidation)
	}

	var ids []domain.GameID
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading csv: %w", domain.ErrValidation, err)
		}
		if column >= len(record) {
			continue
		}

		v, err := strconv.ParseInt(strings.TrimSpace(record[column]), 10, 64)
		if err != nil || v <= 0 {
			continue
		}
		ids = append(ids, domain.GameID(v))
	}

	return ids, nil
}
