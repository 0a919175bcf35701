package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/indievibes/vibefeed/internal/command"
	"github.com/indievibes/vibefeed/internal/domain"
)

const maxBatchBodyBytes = 16 * 1024

type GamesBatch struct {
	Fetcher command.Command[[]domain.GameID, []domain.Game]
}

type gamesBatchRequest struct {
	IDs []int64 `json:"ids"`
}

type GamesListResponse struct {
	Data []domain.Game `json:"data"`
}

func (c GamesBatch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req gamesBatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBodyBytes)).Decode(&req); err != nil {
		writeError(w, r, "unable to decode batch request", fmt.Errorf("%w: %w", domain.ErrValidation, err))
		return
	}

	ids := make([]domain.GameID, 0, len(req.IDs))
	for _, id := range req.IDs {
		ids = append(ids, domain.GameID(id))
	}

	games, err := c.Fetcher.Execute(r.Context(), ids)
	if err != nil {
		writeError(w, r, "unable to fetch games", err)
		return
	}

	writeJSON(w, r, http.StatusOK, GamesListResponse{Data: games})
}
