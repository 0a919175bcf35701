package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/indievibes/vibefeed/internal/command"
	"github.com/indievibes/vibefeed/internal/domain"
)

type GameGet struct {
	Fetcher     command.Command[domain.GameID, domain.Game]
	CacheMaxAge time.Duration
}

func (c GameGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseGameID(mux.Vars(r)["game_id"])
	if err != nil {
		writeError(w, r, "invalid game id", err)
		return
	}

	game, err := c.Fetcher.Execute(r.Context(), id)
	if err != nil {
		writeError(w, r, "unable to fetch game", err)
		return
	}

	w.Header().Set("Cache-Control", cacheControl(c.CacheMaxAge))
	writeJSON(w, r, http.StatusOK, game)
}

func cacheControl(maxAge time.Duration) string {
	return fmt.Sprintf("max-age=%d", int(maxAge.Seconds()))
}
