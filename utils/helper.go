package utils

import (
	"net/url"
	"strings"
)

// IsValidURL reports whether s parses as an absolute http(s) URL.
// Affiliate links are checked with this at input time; the renderer
// itself only requires a non-empty string.
func IsValidURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
