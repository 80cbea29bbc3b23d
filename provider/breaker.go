package provider

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/ZaguanLabs/lexbridge"
)

// BreakerConfig configures a BreakerProvider.
type BreakerConfig struct {
	Name             string        // Breaker name used in logs (default: "provider")
	MaxFailures      uint32        // Consecutive failures that open the breaker (default 5)
	OpenTimeout      time.Duration // Time spent open before probing again (default 30s)
	HalfOpenRequests uint32        // Probes allowed while half-open (default 1)
}

// BreakerProvider stops calling a failing provider for a while so an outage
// costs one fast miss per phrase instead of a full timeout each.
type BreakerProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps provider with a circuit breaker.
func NewBreakerProvider(provider Provider, cfg BreakerConfig, logger *slog.Logger) *BreakerProvider {
	if cfg.Name == "" {
		cfg.Name = "provider"
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	maxFailures := cfg.MaxFailures
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		// A caller giving up is not the provider's fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}

	return &BreakerProvider{
		provider: provider,
		cb:       gobreaker.NewCircuitBreaker(settings),
	}
}

// Translate calls the wrapped provider unless the breaker is open.
func (b *BreakerProvider) Translate(ctx context.Context, req Request) (*Response, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.provider.Translate(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &lexbridge.ProviderError{
			Message:   "circuit breaker " + b.cb.Name() + " is open",
			Cause:     err,
			Retryable: false,
		}
	}
	if err != nil {
		return nil, err
	}
	return out.(*Response), nil
}

// State returns the breaker state.
func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}

var _ Provider = (*BreakerProvider)(nil)
