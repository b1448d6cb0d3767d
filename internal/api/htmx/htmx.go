package htmx

import (
	"net/http"
	"strings"
)

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

func IsBoosted(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Boosted"), "true")
}

// IsPartial reports whether the response should be a fragment rather than a
// full page.
func IsPartial(r *http.Request) bool {
	return IsRequest(r) || IsBoosted(r)
}
