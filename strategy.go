package lexbridge

import (
	"context"
	"strings"

	"github.com/ZaguanLabs/lexbridge/phrasebook"
)

// Strategy is one step of the resolution chain. Try reports false to let
// the next strategy run.
type Strategy interface {
	Name() string
	Try(ctx context.Context, text, from, to string) (ResolutionResult, bool)
}

// TableSource supplies directional phrase tables. *phrasebook.Store
// implements it.
type TableSource interface {
	Table(from, to string) (*phrasebook.Table, bool)
}

var _ TableSource = (*phrasebook.Store)(nil)

func newResult(text, from, to, translated string, confidence float64, method Method) ResolutionResult {
	return ResolutionResult{
		TranslatedText: translated,
		SourceLanguage: from,
		TargetLanguage: to,
		Confidence:     confidence,
		Method:         method,
		OriginalText:   text,
	}
}

// sameLanguageStrategy returns the input unchanged when no translation is
// needed.
type sameLanguageStrategy struct{}

func (sameLanguageStrategy) Name() string { return "same_language" }

func (sameLanguageStrategy) Try(_ context.Context, text, from, to string) (ResolutionResult, bool) {
	if from != to || from == AutoDetect {
		return ResolutionResult{}, false
	}
	return newResult(text, from, to, text, ConfidenceSameLanguage, MethodExactDictionary), true
}

// exactStrategy matches the whole normalised input against the forward table.
type exactStrategy struct {
	tables TableSource
}

func (exactStrategy) Name() string { return "exact" }

func (s exactStrategy) Try(_ context.Context, text, from, to string) (ResolutionResult, bool) {
	table, ok := s.tables.Table(from, to)
	if !ok {
		return ResolutionResult{}, false
	}
	translated, ok := table.Lookup(text)
	if !ok {
		return ResolutionResult{}, false
	}
	return newResult(text, from, to, translated, ConfidenceExact, MethodExactDictionary), true
}

// phraseOverrideStrategy replaces the longest known phrase found inside the
// input. It only applies to tables authored against the pivot language.
type phraseOverrideStrategy struct {
	tables TableSource
	pivot  string
}

func (phraseOverrideStrategy) Name() string { return "phrase_override" }

func (s phraseOverrideStrategy) Try(_ context.Context, text, from, to string) (ResolutionResult, bool) {
	if from != s.pivot && to != s.pivot {
		return ResolutionResult{}, false
	}
	table, ok := s.tables.Table(from, to)
	if !ok {
		return ResolutionResult{}, false
	}

	input := NormalizeText(text)
	var (
		output  string
		matched bool
	)
	// Longest first, so "how are you" wins over its prefix "how".
	table.LongestFirst(func(e phrasebook.Entry) bool {
		if !strings.Contains(input, e.Phrase) {
			return true
		}
		output = strings.ReplaceAll(input, e.Phrase, e.Translation)
		matched = true
		return false
	})
	if !matched || output == input {
		return ResolutionResult{}, false
	}
	return newResult(text, from, to, output, ConfidencePhraseOverride, MethodPhraseOverride), true
}

// wordByWordStrategy translates whitespace-separated tokens independently.
type wordByWordStrategy struct {
	tables TableSource
}

func (wordByWordStrategy) Name() string { return "word_by_word" }

func (s wordByWordStrategy) Try(_ context.Context, text, from, to string) (ResolutionResult, bool) {
	table, ok := s.tables.Table(from, to)
	if !ok {
		return ResolutionResult{}, false
	}
	output, changed := mapTokens(text, table.Lookup)
	if !changed {
		return ResolutionResult{}, false
	}
	return newResult(text, from, to, output, ConfidenceWordByWord, MethodWordByWord), true
}

// reverseLookupStrategy inverts the (to, from) table token by token. It only
// runs when no (from, to) table exists.
type reverseLookupStrategy struct {
	tables TableSource
}

func (reverseLookupStrategy) Name() string { return "reverse_lookup" }

func (s reverseLookupStrategy) Try(_ context.Context, text, from, to string) (ResolutionResult, bool) {
	if _, ok := s.tables.Table(from, to); ok {
		return ResolutionResult{}, false
	}
	reverse, ok := s.tables.Table(to, from)
	if !ok {
		return ResolutionResult{}, false
	}
	output, changed := mapTokens(text, reverse.ReverseLookup)
	if !changed {
		return ResolutionResult{}, false
	}
	return newResult(text, from, to, output, ConfidenceWordByWord, MethodReverseLookup), true
}

// externalStrategy delegates pivot-direction requests to a provider.
type externalStrategy struct {
	external *ExternalResolver
	pivot    string
}

func (externalStrategy) Name() string { return "external" }

func (s externalStrategy) Try(ctx context.Context, text, from, to string) (ResolutionResult, bool) {
	if s.external == nil || (from != s.pivot && to != s.pivot) {
		return ResolutionResult{}, false
	}
	tr, ok := s.external.Resolve(ctx, text, from, to)
	if !ok {
		return ResolutionResult{}, false
	}
	return newResult(text, from, to, tr.Text, tr.Confidence, MethodExternalProvider), true
}

// unresolvedStrategy always succeeds, echoing the input.
type unresolvedStrategy struct{}

func (unresolvedStrategy) Name() string { return "unresolved" }

func (unresolvedStrategy) Try(_ context.Context, text, from, to string) (ResolutionResult, bool) {
	return newResult(text, from, to, text, ConfidenceUnresolved, MethodUnresolved), true
}

// mapTokens lowercases text, splits it on whitespace and replaces every
// token lookup knows. Tokens are rejoined with single spaces.
func mapTokens(text string, lookup func(string) (string, bool)) (string, bool) {
	tokens := strings.Fields(strings.ToLower(text))
	changed := false
	for i, tok := range tokens {
		if repl, ok := lookup(tok); ok && repl != tok {
			tokens[i] = repl
			changed = true
		}
	}
	return strings.Join(tokens, " "), changed
}
