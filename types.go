package lexbridge

import "fmt"

const (
	// AutoDetect is the source-language sentinel that asks for detection.
	AutoDetect = "auto"

	// DefaultPivot is the language most phrase tables are authored against.
	DefaultPivot = "english"
)

// Confidence values assigned by each resolution step.
const (
	ConfidenceSameLanguage   = 1.0
	ConfidenceExact          = 0.95
	ConfidenceExternal       = 0.9
	ConfidencePhraseOverride = 0.85
	ConfidenceWordByWord     = 0.8
	ConfidenceUnresolved     = 0.3
)

// Method records which resolution step produced a result.
type Method int

const (
	// MethodUnresolved means no step produced a translation.
	MethodUnresolved Method = iota
	// MethodExactDictionary is an exact phrase table hit (or same language).
	MethodExactDictionary
	// MethodPhraseOverride is a longest-match substring replacement.
	MethodPhraseOverride
	// MethodReverseLookup inverts the reverse-direction table.
	MethodReverseLookup
	// MethodWordByWord translates token by token.
	MethodWordByWord
	// MethodExternalProvider came from a remote translation provider.
	MethodExternalProvider
)

var methodNames = map[Method]string{
	MethodUnresolved:       "unresolved",
	MethodExactDictionary:  "exact_dictionary",
	MethodPhraseOverride:   "phrase_override",
	MethodReverseLookup:    "reverse_lookup",
	MethodWordByWord:       "word_by_word",
	MethodExternalProvider: "external_provider",
}

// String returns the wire name of the method, e.g. "exact_dictionary".
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Valid reports whether m is one of the declared methods.
func (m Method) Valid() bool {
	_, ok := methodNames[m]
	return ok
}

// ParseMethod converts a wire name back to a Method.
func ParseMethod(name string) (Method, error) {
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}
	return MethodUnresolved, fmt.Errorf("unknown resolution method %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid resolution method %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ResolutionResult is the outcome of resolving one phrase.
type ResolutionResult struct {
	TranslatedText string  `json:"translatedText"`
	SourceLanguage string  `json:"sourceLanguage"`
	TargetLanguage string  `json:"targetLanguage"`
	Confidence     float64 `json:"confidence"`
	Method         Method  `json:"method"`
	OriginalText   string  `json:"originalText"`
}

// Bucket returns the confidence bucket of the result.
func (r ResolutionResult) Bucket() ConfidenceBucket {
	return BucketFor(r.Confidence)
}

// Request is a resolve request as received from a caller.
type Request struct {
	Text string `json:"text"`
	From string `json:"from"`
	To   string `json:"to"`
}

// ConfidenceBucket groups confidence scores for display.
type ConfidenceBucket string

const (
	BucketHigh   ConfidenceBucket = "high"
	BucketMedium ConfidenceBucket = "medium"
	BucketLow    ConfidenceBucket = "low"
)

// BucketFor maps a confidence score to its bucket: dictionary and provider
// hits are high, partial table matches medium, everything else low.
func BucketFor(confidence float64) ConfidenceBucket {
	switch {
	case confidence >= 0.9:
		return BucketHigh
	case confidence >= 0.6:
		return BucketMedium
	default:
		return BucketLow
	}
}

// RTLLanguages contains language identifiers written right-to-left.
var RTLLanguages = map[string]bool{
	"arabic":  true,
	"hebrew":  true,
	"persian": true,
	"urdu":    true,
}
