package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Facet names one dimension of a game's vibe. Each facet has its own embedding
// space, so vectors are only ever compared within a single facet and model.
type Facet string

const (
	FacetTone      Facet = "tone"
	FacetAesthetic Facet = "aesthetic"
	FacetMechanics Facet = "mechanics"
)

// DefaultFeedFacets is the facet set the feed queries when none is configured.
var DefaultFeedFacets = []Facet{FacetTone, FacetAesthetic, FacetMechanics}

var facetPattern = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)

// ValidateFacet checks facet syntax only; the set of facets is open.
func ValidateFacet(f Facet) error {
	if !facetPattern.MatchString(string(f)) {
		return fmt.Errorf("%w: invalid facet [%s]", ErrValidation, f)
	}
	return nil
}

// VibeEmbedding is one stored embedding of a game along a facet.
type VibeEmbedding struct {
	GameID     GameID
	Facet      Facet
	ModelID    string
	Vector     []float32
	SourceType string
	CreatedAt  time.Time
}

// ScoredGame is a single row returned by the embedding store's similarity index.
type ScoredGame struct {
	GameID GameID
	Score  float64
}

// SimilarityCandidate is a game found similar to SourceGameID along Facet.
type SimilarityCandidate struct {
	GameID       GameID  `json:"game_id"`
	Facet        Facet   `json:"facet"`
	Score        float64 `json:"score"`
	SourceGameID GameID  `json:"source_game_id"`
}
