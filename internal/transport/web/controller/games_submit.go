package controller

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/indievibes/vibefeed/internal/command"
	"github.com/indievibes/vibefeed/internal/domain"
)

const maxSubmitBodyBytes = 1 << 20

// GamesSubmit accepts catalog ids for ingestion, either as JSON or as a CSV
// upload with an appid column. JSON submissions are capped per request; CSV
// uploads go through Importer, which takes any number of rows.
type GamesSubmit struct {
	Submitter command.Command[command.SubmitGamesRequest, command.SubmitGamesResult]
	Importer  command.Command[command.SubmitGamesRequest, command.SubmitGamesResult]
}

type gamesSubmitRequest struct {
	AppIDs []int64 `json:"appids"`
}

func (c GamesSubmit) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxSubmitBodyBytes)

	var ids []domain.GameID
	submitter := c.Submitter
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "text/csv":
		parsed, err := command.ParseAppIDCSV(body)
		if err != nil {
			writeError(w, r, "unable to parse submitted CSV", err)
			return
		}
		ids = parsed
		submitter = c.Importer
	default:
		var req gamesSubmitRequest
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			writeError(w, r, "unable to decode submit request", fmt.Errorf("%w: %w", domain.ErrValidation, err))
			return
		}
		for _, id := range req.AppIDs {
			ids = append(ids, domain.GameID(id))
		}
	}

	result, err := submitter.Execute(r.Context(), command.SubmitGamesRequest{
		AppIDs:      ids,
		SubmittedBy: domain.UserIDFromContext(r.Context()),
	})
	if err != nil {
		writeError(w, r, "unable to submit games", err)
		return
	}

	writeJSON(w, r, http.StatusAccepted, result)
}
