package lexbridge

import (
	"context"
	"log/slog"
	"strings"
)

// ResultCache is the cache the Translator consults before resolving and
// writes back to afterwards. The cache package provides the bounded,
// persisted implementation.
type ResultCache interface {
	Lookup(from, to, text string) (*ResolutionResult, bool)
	Store(from, to, text string, result ResolutionResult)
}

// Translator is the caller-facing entry point: it validates requests,
// answers from the cache when it can and otherwise runs the Resolver.
type Translator struct {
	resolver *Resolver
	cache    ResultCache
	detector Detector
	logger   *slog.Logger
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the result cache.
func WithCache(cache ResultCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithDetector replaces the marker-word language detector used for "auto"
// source languages.
func WithDetector(d Detector) TranslatorOption {
	return func(t *Translator) {
		t.detector = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = logger
	}
}

// NewTranslator creates a Translator around r.
func NewTranslator(r *Resolver, opts ...TranslatorOption) *Translator {
	t := &Translator{
		resolver: r,
		detector: DetectorFunc(DetectLanguage),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Translate resolves one request. The only error it returns is a
// *ValidationError for a malformed request; every other failure degrades to
// a lower-confidence result.
func (t *Translator) Translate(ctx context.Context, req Request) (*ResolutionResult, error) {
	text, from, to, err := t.normalize(req)
	if err != nil {
		return nil, err
	}

	if t.cache != nil {
		if cached, ok := t.cache.Lookup(from, to, text); ok {
			t.logger.Debug("cache hit", "from", from, "to", to)
			return cached, nil
		}
	}

	result := t.resolver.Resolve(ctx, text, from, to)

	// Unresolved results are not remembered so a later provider success is
	// not masked by a stale echo.
	if t.cache != nil && result.Method != MethodUnresolved && from != to {
		t.cache.Store(from, to, text, result)
	}

	return &result, nil
}

// Cached returns a previously resolved result without resolving.
func (t *Translator) Cached(text, from, to string) (*ResolutionResult, bool) {
	if t.cache == nil {
		return nil, false
	}
	return t.cache.Lookup(normalizeLang(from), normalizeLang(to), strings.TrimSpace(text))
}

// Remember records a translation produced elsewhere, for example by a
// client that resolved it while online.
func (t *Translator) Remember(text, from, to, translated string, confidence float64, method Method) {
	if t.cache == nil {
		return
	}
	text = strings.TrimSpace(text)
	from, to = normalizeLang(from), normalizeLang(to)
	t.cache.Store(from, to, text, ResolutionResult{
		TranslatedText: translated,
		SourceLanguage: from,
		TargetLanguage: to,
		Confidence:     confidence,
		Method:         method,
		OriginalText:   text,
	})
}

// Detect guesses the language of text.
func (t *Translator) Detect(text string) Detection {
	return t.detector.Detect(text)
}

// Resolver returns the underlying resolver.
func (t *Translator) Resolver() *Resolver {
	return t.resolver
}

func (t *Translator) normalize(req Request) (text, from, to string, err error) {
	text = strings.TrimSpace(req.Text)
	from = normalizeLang(req.From)
	to = normalizeLang(req.To)

	switch {
	case text == "":
		return "", "", "", &ValidationError{Field: "text"}
	case from == "":
		return "", "", "", &ValidationError{Field: "from"}
	case to == "":
		return "", "", "", &ValidationError{Field: "to"}
	case to == AutoDetect:
		return "", "", "", &ValidationError{Field: "to", Message: "target language cannot be auto"}
	}

	if from == AutoDetect {
		d := t.detector.Detect(text)
		t.logger.Debug("detected source language", "language", d.Language, "confidence", d.Confidence)
		from = d.Language
	}

	return text, from, to, nil
}

func normalizeLang(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
