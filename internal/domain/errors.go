package domain

import "errors"

// Error taxonomy shared by commands and transports. Callers wrap these with
// fmt.Errorf("...: %w") and match them with errors.Is.
var (
	// ErrValidation marks malformed input. Never retried.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks an absent game or embedding.
	ErrNotFound = errors.New("not found")
	// ErrUpstream marks an unreachable embedding store or embedding producer.
	ErrUpstream = errors.New("upstream unavailable")
	// ErrIncompatibleFacet marks an attempt to compare vectors from different facets or models.
	ErrIncompatibleFacet = errors.New("incompatible facet")
	// ErrRateLimited marks a request rejected by admission control.
	ErrRateLimited = errors.New("rate limited")
	// ErrComposeFailed marks a feed where every content stream failed.
	ErrComposeFailed = errors.New("feed composition failed")
)
