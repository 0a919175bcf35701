package controller

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/indievibes/vibefeed/internal/command"
	"github.com/indievibes/vibefeed/internal/domain"
)

type SimilarGamesList struct {
	Finder      command.Command[command.FindSimilarGamesRequest, []domain.SimilarityCandidate]
	CacheMaxAge time.Duration
}

type SimilarGamesListResponse struct {
	Data     []domain.SimilarityCandidate `json:"data"`
	Metadata SimilarGamesListMetadata     `json:"metadata"`
}

type SimilarGamesListMetadata struct {
	SourceGameID domain.GameID `json:"source_game_id"`
	Facet        domain.Facet  `json:"facet"`
	Threshold    float64       `json:"threshold"`
}

func (c SimilarGamesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseGameID(mux.Vars(r)["game_id"])
	if err != nil {
		writeError(w, r, "invalid game id", err)
		return
	}

	facet, threshold, limit, err := parseSimilarQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, "unable to parse similarity query", err)
		return
	}

	candidates, err := c.Finder.Execute(r.Context(), command.FindSimilarGamesRequest{
		GameID:    id,
		Facet:     facet,
		Threshold: threshold,
		Limit:     limit,
	})
	if err != nil {
		writeError(w, r, "unable to find similar games", err)
		return
	}

	if c.CacheMaxAge > 0 {
		w.Header().Set("Cache-Control", cacheControl(c.CacheMaxAge))
	}
	writeJSON(w, r, http.StatusOK, SimilarGamesListResponse{
		Data: candidates,
		Metadata: SimilarGamesListMetadata{
			SourceGameID: id,
			Facet:        facet,
			Threshold:    threshold,
		},
	})
}
