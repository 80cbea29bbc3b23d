package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/ZaguanLabs/lexbridge"
)

func TestResultCache_StatsEmpty(t *testing.T) {
	s := NewResultCache(25).Stats()

	if s.AverageConfidence != 0 {
		t.Errorf("AverageConfidence = %v, want 0", s.AverageConfidence)
	}
	if s.TotalEntries != 0 || s.TotalAccesses != 0 || s.MaxSize != 25 {
		t.Errorf("unexpected stats: %+v", s)
	}
	if !s.OldestEntry.IsZero() || !s.NewestEntry.IsZero() {
		t.Errorf("expected zero timestamps, got %v / %v", s.OldestEntry, s.NewestEntry)
	}
}

func TestResultCache_Stats(t *testing.T) {
	clock := newTestClock()
	c := NewResultCache(10, WithClock(clock.Now))

	start := clock.Now()
	c.Put("english", "swahili", "hello", result("hujambo", 0.95, lexbridge.MethodExactDictionary))
	clock.Advance(time.Minute)
	c.Put("english", "swahili", "hello friend", result("hujambo friend", 0.85, lexbridge.MethodPhraseOverride))
	clock.Advance(time.Minute)
	c.Put("english", "swahili", "xyzzy", result("xyzzy", 0.3, lexbridge.MethodUnresolved))

	c.Get("english", "swahili", "hello")
	c.Get("english", "swahili", "hello")

	s := c.Stats()
	if s.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3", s.TotalEntries)
	}
	if s.TotalAccesses != 5 {
		t.Errorf("TotalAccesses = %d, want 5", s.TotalAccesses)
	}
	want := (0.95 + 0.85 + 0.3) / 3
	if diff := s.AverageConfidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("AverageConfidence = %v, want %v", s.AverageConfidence, want)
	}
	if !s.OldestEntry.Equal(start) {
		t.Errorf("OldestEntry = %v, want %v", s.OldestEntry, start)
	}
	if !s.NewestEntry.Equal(start.Add(2 * time.Minute)) {
		t.Errorf("NewestEntry = %v, want %v", s.NewestEntry, start.Add(2*time.Minute))
	}
}

func TestResultCache_Popular(t *testing.T) {
	clock := newTestClock()
	c := NewResultCache(50, WithClock(clock.Now))

	put := func(text string, hits int) {
		c.Put("english", "yoruba", text, result(text+"-yo", 0.95, lexbridge.MethodExactDictionary))
		for i := 0; i < hits; i++ {
			c.Get("english", "yoruba", text)
		}
		clock.Advance(time.Second)
	}
	put("water", 5)
	put("food", 2)
	put("house", 2)
	put("thank you", 9)
	put("hello", 0)

	got := c.Popular(3)
	var order []string
	for _, e := range got {
		order = append(order, e.OriginalText)
	}
	want := []string{"thank you", "water", "food"}
	if fmt.Sprint(order) != fmt.Sprint(want) {
		t.Errorf("Popular(3) = %v, want %v", order, want)
	}

	// food and house tie on access count; the older entry comes first.
	all := c.Popular(100)
	if len(all) != 5 {
		t.Fatalf("Popular(100) returned %d entries", len(all))
	}
	if all[2].OriginalText != "food" || all[3].OriginalText != "house" {
		t.Errorf("tie order = %q, %q", all[2].OriginalText, all[3].OriginalText)
	}

	// Reading popular entries is not an access.
	again := c.Popular(1)
	if again[0].AccessCount != got[0].AccessCount {
		t.Errorf("Popular bumped AccessCount: %d -> %d", got[0].AccessCount, again[0].AccessCount)
	}
}

func TestResultCache_PopularDefaultLimit(t *testing.T) {
	clock := newTestClock()
	c := NewResultCache(50, WithClock(clock.Now))
	for i := 0; i < 15; i++ {
		c.Put("english", "zulu", fmt.Sprintf("w%02d", i), result("x", 0.8, lexbridge.MethodWordByWord))
	}

	if got := len(c.Popular(0)); got != DefaultPopularLimit {
		t.Errorf("len(Popular(0)) = %d, want %d", got, DefaultPopularLimit)
	}

	// Equal counts and timestamps fall back to key order.
	first := c.Popular(-1)[0]
	if first.OriginalText != "w00" {
		t.Errorf("first = %q, want w00", first.OriginalText)
	}
}
