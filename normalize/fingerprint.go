package normalize

import (
	"net/url"
	"strings"
)

// Fingerprint derives a deterministic identifier for an element that stays
// stable across scan runs: lower(url.path) + "::" + lower(selector) +
// "::" + lower(label).
func Fingerprint(pageURL, selector, label string) string {
	path := pageURL
	if u, err := url.Parse(pageURL); err == nil {
		path = u.Path
		if path == "" {
			path = "/"
		}
	}
	return strings.ToLower(path) + "::" + strings.ToLower(selector) + "::" + strings.ToLower(label)
}
