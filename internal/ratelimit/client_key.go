package ratelimit

import (
	"net/http"
	"strings"
)

// UnknownClientKey is the bucket shared by every request that carries no usable address.
const UnknownClientKey = "unknown"

// ClientKey derives the rate limit key from forwarding headers: the first entry of
// X-Forwarded-For, else X-Real-IP, else UnknownClientKey.
func ClientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	return UnknownClientKey
}
