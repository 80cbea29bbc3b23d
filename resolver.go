package lexbridge

import (
	"context"
	"log/slog"
	"strings"
)

// Resolver turns (text, from, to) into a ResolutionResult by running an
// ordered list of strategies until one succeeds. The last strategy always
// succeeds, so Resolve never fails.
//
// A Resolver is read-only after construction and safe for concurrent use.
type Resolver struct {
	tables     TableSource
	pivot      string
	external   *ExternalResolver
	logger     *slog.Logger
	strategies []Strategy
}

// ResolverOption is a functional option for configuring the Resolver.
type ResolverOption func(*Resolver)

// WithPivot sets the language the enhanced phrase tables are authored
// against. Phrase overrides and external lookups only run when one side of
// the request is the pivot.
func WithPivot(lang string) ResolverOption {
	return func(r *Resolver) {
		r.pivot = strings.ToLower(strings.TrimSpace(lang))
	}
}

// WithExternal enables the external provider step.
func WithExternal(external *ExternalResolver) ResolverOption {
	return func(r *Resolver) {
		r.external = external
	}
}

// WithResolverLogger sets the logger used for strategy tracing.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver over the given phrase tables.
func NewResolver(tables TableSource, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		tables: tables,
		pivot:  DefaultPivot,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.strategies = []Strategy{
		sameLanguageStrategy{},
		exactStrategy{tables: r.tables},
		phraseOverrideStrategy{tables: r.tables, pivot: r.pivot},
		wordByWordStrategy{tables: r.tables},
		reverseLookupStrategy{tables: r.tables},
		externalStrategy{external: r.external, pivot: r.pivot},
		unresolvedStrategy{},
	}

	return r
}

// Strategies returns the names of the strategies in the order they run.
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}
	return names
}

// Pivot returns the configured pivot language.
func (r *Resolver) Pivot() string {
	return r.pivot
}

// Resolve runs the strategy chain. Language identifiers are matched
// case-insensitively; unknown identifiers simply find no tables.
//
// Callers are expected to reject empty text beforehand (see Translator).
func (r *Resolver) Resolve(ctx context.Context, text, from, to string) ResolutionResult {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))

	for _, s := range r.strategies {
		if result, ok := s.Try(ctx, text, from, to); ok {
			r.logger.Debug("phrase resolved",
				"strategy", s.Name(),
				"from", from,
				"to", to,
				"method", result.Method.String(),
				"confidence", result.Confidence,
			)
			return result
		}
	}

	// unresolvedStrategy always succeeds; this is only reached if the chain
	// was built without it.
	return newResult(text, from, to, text, ConfidenceUnresolved, MethodUnresolved)
}
