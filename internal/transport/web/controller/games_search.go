package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/indievibes/vibefeed/internal/command"
	"github.com/indievibes/vibefeed/internal/domain"
)

const maxSearchBodyBytes = 16 * 1024

type GamesSearch struct {
	Searcher command.Command[command.SearchGamesRequest, []command.SearchGamesResult]
}

type gamesSearchRequest struct {
	Text  string       `json:"text"`
	Facet domain.Facet `json:"facet"`
	Limit int          `json:"limit"`
}

type GamesSearchResponse struct {
	Data []command.SearchGamesResult `json:"data"`
}

func (c GamesSearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req gamesSearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSearchBodyBytes)).Decode(&req); err != nil {
		writeError(w, r, "unable to decode search request", fmt.Errorf("%w: %w", domain.ErrValidation, err))
		return
	}

	results, err := c.Searcher.Execute(r.Context(), command.SearchGamesRequest{
		Text:  req.Text,
		Facet: req.Facet,
		Limit: req.Limit,
	})
	if err != nil {
		writeError(w, r, "unable to search games", err)
		return
	}

	writeJSON(w, r, http.StatusOK, GamesSearchResponse{Data: results})
}
