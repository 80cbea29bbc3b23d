package lexbridge

import (
	"net/url"
	"strings"
)

// NormalizeText lowercases and trims text the way phrase tables and cache
// keys expect it.
func NormalizeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// CacheKey derives the result-cache key for a phrase in one direction.
//
// The text is normalised, so case variants share a key. Language identifiers
// are query-escaped: a ':' inside an identifier becomes "%3A", which keeps
// ("a:b", "c") and ("a", "b:c") apart.
func CacheKey(from, to, text string) string {
	return url.QueryEscape(from) + ":" + url.QueryEscape(to) + ":" + NormalizeText(text)
}
