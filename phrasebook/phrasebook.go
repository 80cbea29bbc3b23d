// Package phrasebook holds the static, per-language-pair phrase tables the
// resolver looks phrases up in.
//
// Tables are loaded once (usually from the embedded defaults) and never
// mutated afterwards, so a *Store can be shared freely between goroutines.
package phrasebook

import (
	"fmt"
	"sort"
	"strings"
)

// pairSeparator joins the two language identifiers in a table name,
// e.g. "english_to_swahili".
const pairSeparator = "_to_"

// Pair identifies a directional language pair.
type Pair struct {
	From string
	To   string
}

// Reverse returns the pair pointing the other way.
func (p Pair) Reverse() Pair {
	return Pair{From: p.To, To: p.From}
}

// String returns the table name used in source files ("from_to_to").
func (p Pair) String() string {
	return p.From + pairSeparator + p.To
}

// ParsePair parses a table name such as "english_to_swahili".
func ParsePair(name string) (Pair, error) {
	idx := strings.Index(name, pairSeparator)
	if idx <= 0 || idx+len(pairSeparator) >= len(name) {
		return Pair{}, fmt.Errorf("invalid table name %q: want <from>%s<to>", name, pairSeparator)
	}
	return Pair{
		From: strings.ToLower(strings.TrimSpace(name[:idx])),
		To:   strings.ToLower(strings.TrimSpace(name[idx+len(pairSeparator):])),
	}, nil
}

// Entry is a single phrase mapping.
type Entry struct {
	Phrase      string
	Translation string
}

// Table maps lowercase source phrases to lowercase target phrases for one
// Pair. Entries keep the order they were authored in.
type Table struct {
	pair    Pair
	entries []Entry
	index   map[string]int

	// byLength lists entry indexes with the longest phrase first.
	byLength []int
}

// NewTable builds a table from entries in authored order. Phrases and
// translations are lowercased and trimmed; a phrase that appears twice after
// normalisation is an error.
func NewTable(pair Pair, entries []Entry) (*Table, error) {
	t := &Table{
		pair:    pair,
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		phrase := normalize(e.Phrase)
		if phrase == "" {
			return nil, fmt.Errorf("table %s: empty phrase", pair)
		}
		if _, dup := t.index[phrase]; dup {
			return nil, fmt.Errorf("table %s: duplicate phrase %q", pair, phrase)
		}
		t.index[phrase] = len(t.entries)
		t.entries = append(t.entries, Entry{Phrase: phrase, Translation: normalize(e.Translation)})
	}

	t.byLength = make([]int, len(t.entries))
	for i := range t.byLength {
		t.byLength[i] = i
	}
	sort.SliceStable(t.byLength, func(a, b int) bool {
		return len(t.entries[t.byLength[a]].Phrase) > len(t.entries[t.byLength[b]].Phrase)
	})

	return t, nil
}

// Pair returns the direction of the table.
func (t *Table) Pair() Pair {
	return t.pair
}

// Len returns the number of phrases in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup returns the translation of an exact phrase. The phrase is
// lowercased before the lookup.
func (t *Table) Lookup(phrase string) (string, bool) {
	i, ok := t.index[normalize(phrase)]
	if !ok {
		return "", false
	}
	return t.entries[i].Translation, true
}

// ReverseLookup returns the first phrase, in authored order, whose
// translation equals value.
func (t *Table) ReverseLookup(value string) (string, bool) {
	value = normalize(value)
	for _, e := range t.entries {
		if e.Translation == value {
			return e.Phrase, true
		}
	}
	return "", false
}

// Entries returns a copy of the entries in authored order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// LongestFirst calls fn for every entry, longest phrase first, until fn
// returns false. Phrases of equal length keep their authored order.
func (t *Table) LongestFirst(fn func(Entry) bool) {
	for _, i := range t.byLength {
		if !fn(t.entries[i]) {
			return
		}
	}
}

// Store is an immutable set of tables keyed by Pair.
type Store struct {
	tables map[Pair]*Table
}

// NewStore builds a store from tables. Two tables for the same pair is an
// error.
func NewStore(tables ...*Table) (*Store, error) {
	s := &Store{tables: make(map[Pair]*Table, len(tables))}
	for _, t := range tables {
		if _, dup := s.tables[t.pair]; dup {
			return nil, fmt.Errorf("duplicate table %s", t.pair)
		}
		s.tables[t.pair] = t
	}
	return s, nil
}

// Table returns the table for the from→to direction.
func (s *Store) Table(from, to string) (*Table, bool) {
	t, ok := s.tables[Pair{From: normalize(from), To: normalize(to)}]
	return t, ok
}

// Pairs returns every pair that has a table, sorted by name.
func (s *Store) Pairs() []Pair {
	pairs := make([]Pair, 0, len(s.tables))
	for p := range s.tables {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].String() < pairs[j].String()
	})
	return pairs
}

// Len returns the number of tables.
func (s *Store) Len() int {
	return len(s.tables)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
