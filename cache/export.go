package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/ZaguanLabs/lexbridge"
)

// SnapshotVersion is the only snapshot format version Import accepts.
const SnapshotVersion = 1

// Snapshot is the portable form of a cache, used both for export files and
// for the durable stores.
type Snapshot struct {
	Version   int
	Timestamp time.Time
	Entries   []SnapshotEntry
}

// SnapshotEntry is one [key, entry] pair of a snapshot.
type SnapshotEntry struct {
	Key   string
	Entry Entry
}

type snapshotJSON struct {
	Version   int             `json:"version"`
	Timestamp int64           `json:"timestamp"`
	Entries   []SnapshotEntry `json:"entries"`
}

// MarshalJSON implements json.Marshaler.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{
		Version:   s.Version,
		Timestamp: toMillis(s.Timestamp),
		Entries:   s.Entries,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var w snapshotJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	s.Version = w.Version
	s.Timestamp = fromMillis(w.Timestamp)
	s.Entries = w.Entries
	return nil
}

// MarshalJSON encodes the entry as a two-element array.
func (e SnapshotEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Key, e.Entry})
}

// UnmarshalJSON decodes a [key, entry] array.
func (e *SnapshotEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("snapshot entry has %d elements, want 2", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.Key); err != nil {
		return fmt.Errorf("snapshot entry key: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.Entry); err != nil {
		return fmt.Errorf("snapshot entry %q: %w", e.Key, err)
	}
	e.Entry.Key = e.Key
	return nil
}

// Export returns a snapshot of every entry, ordered by key. Exporting does
// not count as an access.
func (c *ResultCache) Export() *Snapshot {
	c.mu.Lock()
	entries := make([]SnapshotEntry, 0, len(c.entries))
	for k, e := range c.entries {
		entries = append(entries, SnapshotEntry{Key: k, Entry: *e})
	}
	ts := c.now()
	c.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	return &Snapshot{
		Version:   SnapshotVersion,
		Timestamp: ts,
		Entries:   entries,
	}
}

// Import replaces the cache contents with snap. It returns false, leaving
// the cache untouched, if the snapshot is rejected.
func (c *ResultCache) Import(snap *Snapshot) bool {
	if err := c.ImportSnapshot(snap); err != nil {
		c.logger.Warn("cache import rejected", "error", err)
		return false
	}
	return true
}

// ImportSnapshot is Import with the rejection reason. Errors are
// *lexbridge.ImportError.
func (c *ResultCache) ImportSnapshot(snap *Snapshot) error {
	return c.replace(snap, true)
}

// replace validates snap and swaps it in. Snapshots larger than the cache
// keep their most recently accessed entries.
func (c *ResultCache) replace(snap *Snapshot, persist bool) error {
	if snap == nil {
		return &lexbridge.ImportError{Reason: "snapshot is nil"}
	}
	if snap.Version != SnapshotVersion {
		return &lexbridge.ImportError{Reason: fmt.Sprintf("unsupported version %d", snap.Version)}
	}
	if snap.Entries == nil {
		return &lexbridge.ImportError{Reason: "snapshot has no entries list"}
	}

	entries := make([]*Entry, 0, len(snap.Entries))
	seen := make(map[string]bool, len(snap.Entries))
	for _, se := range snap.Entries {
		e := se.Entry
		e.Key = se.Key
		if err := e.validate(); err != nil {
			return &lexbridge.ImportError{Reason: "invalid entry", Cause: fmt.Errorf("%q: %w", se.Key, err)}
		}
		if seen[e.Key] {
			return &lexbridge.ImportError{Reason: "duplicate key", Cause: errors.New(e.Key)}
		}
		seen[e.Key] = true
		entries = append(entries, &e)
	}

	if len(entries) > c.maxSize {
		sort.Slice(entries, func(i, j int) bool {
			return olderThan(entries[j], entries[i])
		})
		entries = entries[:c.maxSize]
	}

	next := make(map[string]*Entry, len(entries))
	for _, e := range entries {
		next[e.Key] = e
	}

	c.mu.Lock()
	c.entries = next
	c.mu.Unlock()

	if persist {
		c.changed()
	}
	return nil
}

// ExportTo writes the snapshot as indented JSON.
func (c *ResultCache) ExportTo(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(c.Export()); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ImportFrom reads a JSON snapshot and imports it. Malformed JSON and
// rejected snapshots are both reported as *lexbridge.ImportError.
func (c *ResultCache) ImportFrom(r io.Reader) error {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return &lexbridge.ImportError{Reason: "malformed JSON", Cause: err}
	}
	return c.ImportSnapshot(&snap)
}

// ExportToFile exports the cache to a file.
// The path is provided by the caller and is intentionally user-controlled.
func (c *ResultCache) ExportToFile(path string) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if err := c.ExportTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ImportFromFile imports a snapshot from a file.
// The path is provided by the caller and is intentionally user-controlled.
func (c *ResultCache) ImportFromFile(path string) error {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return c.ImportFrom(f)
}
