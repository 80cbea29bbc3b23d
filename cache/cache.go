// Package cache provides the bounded result cache and the durable stores it
// persists to.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ZaguanLabs/lexbridge"
)

// ErrNotFound is returned by Store.Load when nothing has been persisted yet.
var ErrNotFound = errors.New("cache: no persisted snapshot")

// Store is durable storage for cache snapshots. Implementations replace
// their contents wholesale on Save.
type Store interface {
	// Load returns the last saved snapshot, or ErrNotFound.
	Load(ctx context.Context) (*Snapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Clear removes the stored snapshot. Clearing an empty store is not an
	// error.
	Clear(ctx context.Context) error
}

// Entry is one cached resolution together with its access bookkeeping.
type Entry struct {
	Key            string
	OriginalText   string
	TranslatedText string
	SourceLanguage string
	TargetLanguage string
	Confidence     float64
	Method         lexbridge.Method
	CreatedAt      time.Time
	LastAccessedAt time.Time
	AccessCount    int
}

// Result converts the entry back to a resolution result.
func (e *Entry) Result() lexbridge.ResolutionResult {
	return lexbridge.ResolutionResult{
		TranslatedText: e.TranslatedText,
		SourceLanguage: e.SourceLanguage,
		TargetLanguage: e.TargetLanguage,
		Confidence:     e.Confidence,
		Method:         e.Method,
		OriginalText:   e.OriginalText,
	}
}

func (e *Entry) validate() error {
	switch {
	case e.Key == "":
		return errors.New("entry has no key")
	case !e.Method.Valid():
		return errors.New("entry has an invalid method")
	case e.Confidence < 0 || e.Confidence > 1:
		return errors.New("entry confidence out of range")
	case e.AccessCount < 0:
		return errors.New("entry access count is negative")
	}
	return nil
}

// entryJSON is the wire form of an Entry. Timestamps are Unix milliseconds
// so exports interoperate with browser clients. The key lives in the
// enclosing tuple.
type entryJSON struct {
	OriginalText   string           `json:"originalText"`
	TranslatedText string           `json:"translatedText"`
	SourceLanguage string           `json:"sourceLanguage"`
	TargetLanguage string           `json:"targetLanguage"`
	Confidence     float64          `json:"confidence"`
	Method         lexbridge.Method `json:"method"`
	Timestamp      int64            `json:"timestamp"`
	LastAccessed   int64            `json:"lastAccessed"`
	AccessCount    int              `json:"accessCount"`
}

// MarshalJSON implements json.Marshaler.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		OriginalText:   e.OriginalText,
		TranslatedText: e.TranslatedText,
		SourceLanguage: e.SourceLanguage,
		TargetLanguage: e.TargetLanguage,
		Confidence:     e.Confidence,
		Method:         e.Method,
		Timestamp:      toMillis(e.CreatedAt),
		LastAccessed:   toMillis(e.LastAccessedAt),
		AccessCount:    e.AccessCount,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Key is left untouched.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w entryJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.OriginalText = w.OriginalText
	e.TranslatedText = w.TranslatedText
	e.SourceLanguage = w.SourceLanguage
	e.TargetLanguage = w.TargetLanguage
	e.Confidence = w.Confidence
	e.Method = w.Method
	e.CreatedAt = fromMillis(w.Timestamp)
	e.LastAccessedAt = fromMillis(w.LastAccessed)
	e.AccessCount = w.AccessCount
	return nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
