package cache

import (
	"sort"
	"time"
)

// DefaultPopularLimit is used by Popular for non-positive limits.
const DefaultPopularLimit = 10

// Stats summarises the cache contents.
type Stats struct {
	TotalEntries      int       `json:"totalEntries"`
	MaxSize           int       `json:"maxSize"`
	TotalAccesses     int       `json:"totalAccesses"`
	AverageConfidence float64   `json:"averageConfidence"`
	OldestEntry       time.Time `json:"oldestEntry"`
	NewestEntry       time.Time `json:"newestEntry"`
}

// Stats returns summary figures. Oldest and newest refer to CreatedAt. On an
// empty cache AverageConfidence is 0 and both timestamps are zero.
func (c *ResultCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		TotalEntries: len(c.entries),
		MaxSize:      c.maxSize,
	}
	if len(c.entries) == 0 {
		return s
	}

	var sum float64
	for _, e := range c.entries {
		s.TotalAccesses += e.AccessCount
		sum += e.Confidence
		if s.OldestEntry.IsZero() || e.CreatedAt.Before(s.OldestEntry) {
			s.OldestEntry = e.CreatedAt
		}
		if e.CreatedAt.After(s.NewestEntry) {
			s.NewestEntry = e.CreatedAt
		}
	}
	s.AverageConfidence = sum / float64(len(c.entries))

	return s
}

// Popular returns up to limit entries ordered by descending AccessCount.
// Ties are ordered by CreatedAt, then key, so the result is stable. Reading
// popular entries does not count as an access.
func (c *ResultCache) Popular(limit int) []Entry {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}

	c.mu.Lock()
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, *e)
	}
	c.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.AccessCount != b.AccessCount {
			return a.AccessCount > b.AccessCount
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Key < b.Key
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
