package lexbridge

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
)

// DefaultExternalTimeout bounds one external provider round trip.
const DefaultExternalTimeout = 10 * time.Second

// Provider is the interface for remote translation backends.
type Provider interface {
	Translate(ctx context.Context, req ProviderRequest) (*ProviderResponse, error)
}

// ProviderRequest contains the parameters for one provider call. Language
// fields carry provider-facing codes (see ISOCode).
type ProviderRequest struct {
	Text       string
	SourceLang string
	TargetLang string
}

// ProviderResponse is a provider's answer.
type ProviderResponse struct {
	Text string
	// Provider names the backend that answered, for logging.
	Provider string
}

// ExternalTranslation is a successful external lookup.
type ExternalTranslation struct {
	Text       string
	Confidence float64
}

// ExternalResolver adapts a Provider into the resolution chain. It never
// returns errors: every failure is logged and reported as absent so the
// chain can fall through.
type ExternalResolver struct {
	provider Provider
	timeout  time.Duration
	logger   *slog.Logger
}

// ExternalOption is a functional option for configuring the ExternalResolver.
type ExternalOption func(*ExternalResolver)

// WithTimeout bounds each provider call. Zero disables the bound.
func WithTimeout(d time.Duration) ExternalOption {
	return func(e *ExternalResolver) {
		e.timeout = d
	}
}

// WithAdapterLogger sets the logger used for provider failures.
func WithAdapterLogger(logger *slog.Logger) ExternalOption {
	return func(e *ExternalResolver) {
		e.logger = logger
	}
}

// NewExternalResolver wraps p. A nil provider yields a resolver that is
// always absent.
func NewExternalResolver(p Provider, opts ...ExternalOption) *ExternalResolver {
	e := &ExternalResolver{
		provider: p,
		timeout:  DefaultExternalTimeout,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Resolve asks the provider for a translation. The second return value is
// false when the provider is missing, fails, times out or returns nothing.
func (e *ExternalResolver) Resolve(ctx context.Context, text, from, to string) (ExternalTranslation, bool) {
	if e == nil || e.provider == nil {
		return ExternalTranslation{}, false
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	req := ProviderRequest{
		Text:       text,
		SourceLang: ISOCode(from),
		TargetLang: ISOCode(to),
	}

	resp, err := e.provider.Translate(ctx, req)
	if err != nil {
		e.logger.Debug("external provider failed",
			"from", req.SourceLang,
			"to", req.TargetLang,
			"retryable", IsRetryable(err),
			"timeout", errors.Is(err, context.DeadlineExceeded),
			"error", err,
		)
		return ExternalTranslation{}, false
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		e.logger.Debug("external provider returned empty translation",
			"from", req.SourceLang,
			"to", req.TargetLang,
		)
		return ExternalTranslation{}, false
	}

	return ExternalTranslation{
		Text:       strings.TrimSpace(resp.Text),
		Confidence: ConfidenceExternal,
	}, true
}
