package controller

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/indievibes/vibefeed/internal/domain"
)

const (
	maxPageSize = 100

	defaultSimilarFacet     = domain.FacetTone
	defaultSimilarThreshold = 0.4
)

// parsePageSize returns 0 when page_size is absent, leaving the default to the feed.
func parsePageSize(q url.Values) (int, error) {
	if !q.Has("page_size") {
		return 0, nil
	}

	ps, err := strconv.ParseInt(q.Get("page_size"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: unable to parse page size from query: %w", domain.ErrValidation, err)
	}
	if ps > maxPageSize {
		return 0, fmt.Errorf("%w: page size [%d] exceeds limit [%d]", domain.ErrValidation, ps, maxPageSize)
	}
	if ps < 1 {
		return 0, fmt.Errorf("%w: invalid page size value [%d]", domain.ErrValidation, ps)
	}

	return int(ps), nil
}

// parseSeed returns 0, selecting the home feed, when seed is absent.
func parseSeed(q url.Values) (domain.GameID, error) {
	if !q.Has("seed") || q.Get("seed") == "" {
		return 0, nil
	}
	return domain.ParseGameID(q.Get("seed"))
}

func parseSimilarQuery(q url.Values) (facet domain.Facet, threshold float64, limit int, err error) {
	facet = defaultSimilarFacet
	if q.Has("facet") {
		facet = domain.Facet(q.Get("facet"))
	}

	threshold = defaultSimilarThreshold
	if q.Has("threshold") {
		threshold, err = strconv.ParseFloat(q.Get("threshold"), 64)
		if err != nil {
			return "", 0, 0, fmt.Errorf("%w: unable to parse threshold from query: %w", domain.ErrValidation, err)
		}
	}

	if q.Has("limit") {
		l, err := strconv.ParseInt(q.Get("limit"), 10, 32)
		if err != nil {
			return "", 0, 0, fmt.Errorf("%w: unable to parse limit from query: %w", domain.ErrValidation, err)
		}
		limit = int(l)
	}

	return facet, threshold, limit, nil
}
