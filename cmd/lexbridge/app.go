package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ZaguanLabs/lexbridge"
	"github.com/ZaguanLabs/lexbridge/cache"
	"github.com/ZaguanLabs/lexbridge/internal/config"
	"github.com/ZaguanLabs/lexbridge/internal/logging"
	"github.com/ZaguanLabs/lexbridge/phrasebook"
	"github.com/ZaguanLabs/lexbridge/provider"
)

// app is everything a command needs, built from the loaded configuration.
type app struct {
	logger     *slog.Logger
	tables     *phrasebook.Store
	results    *cache.ResultCache
	translator *lexbridge.Translator
	closers    []io.Closer
}

type appOptions struct {
	// offline skips the external provider even when one is configured.
	offline bool
	// needCache fails instead of running without a cache.
	needCache bool
}

func newApp(ctx context.Context, cfg *config.Config, stderr io.Writer, opts appOptions) (*app, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, stderr)
	if err != nil {
		return nil, err
	}

	a := &app{logger: logger}

	a.tables, err = loadTables(cfg.Resolver.PhrasebookFile)
	if err != nil {
		return nil, err
	}

	if err := a.openCache(ctx, cfg.Cache); err != nil {
		a.Close()
		return nil, err
	}
	if opts.needCache && a.results == nil {
		a.Close()
		return nil, errors.New("no cache configured (cache backend is none)")
	}

	resolverOpts := []lexbridge.ResolverOption{
		lexbridge.WithPivot(cfg.Resolver.Pivot),
		lexbridge.WithResolverLogger(logger),
	}
	if !opts.offline {
		p, err := buildProvider(ctx, cfg.Provider, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		if p != nil {
			resolverOpts = append(resolverOpts, lexbridge.WithExternal(lexbridge.NewExternalResolver(p,
				lexbridge.WithTimeout(cfg.Provider.Timeout),
				lexbridge.WithAdapterLogger(logger),
			)))
			if c, ok := p.(io.Closer); ok {
				a.closers = append(a.closers, c)
			}
		}
	}

	translatorOpts := []lexbridge.TranslatorOption{lexbridge.WithLogger(logger)}
	if a.results != nil {
		translatorOpts = append(translatorOpts, lexbridge.WithCache(a.results))
	}
	a.translator = lexbridge.NewTranslator(lexbridge.NewResolver(a.tables, resolverOpts...), translatorOpts...)

	return a, nil
}

func loadTables(path string) (*phrasebook.Store, error) {
	if path == "" {
		return phrasebook.Default()
	}
	tables, err := phrasebook.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading phrasebook %s: %w", path, err)
	}
	return tables, nil
}

func (a *app) openCache(ctx context.Context, cfg config.CacheConfig) error {
	cacheOpts := []cache.Option{cache.WithLogger(a.logger), cache.WithTTL(cfg.TTL)}

	var store cache.Store
	switch cfg.Backend {
	case config.BackendNone:
		return nil
	case config.BackendMemory:
		a.results = cache.NewResultCache(cfg.MaxSize, cacheOpts...)
		return nil
	case config.BackendFile:
		store = cache.NewFileStore(cfg.Path)
	case config.BackendRedis:
		s, err := cache.NewRedisStore(cache.RedisConfig{
			URL:       cfg.Redis.URL,
			TTL:       cfg.Redis.TTL,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return fmt.Errorf("cache.NewRedisStore > %w", err)
		}
		a.closers = append(a.closers, s)
		store = s
	case config.BackendSQLite:
		s, err := cache.OpenSQLStore(ctx, cache.DriverSQLite, cfg.Path)
		if err != nil {
			return fmt.Errorf("cache.OpenSQLStore > %w", err)
		}
		a.closers = append(a.closers, s)
		store = s
	case config.BackendMySQL:
		dsn := cache.MySQLDSN(cache.MySQLConfig{
			Host:     cfg.MySQL.Host,
			Port:     cfg.MySQL.Port,
			Database: cfg.MySQL.Database,
			Username: cfg.MySQL.Username,
			Password: cfg.MySQL.Password,
			TLS:      cfg.MySQL.TLS,
		})
		s, err := cache.OpenSQLStore(ctx, cache.DriverMySQL, dsn)
		if err != nil {
			return fmt.Errorf("cache.OpenSQLStore > %w", err)
		}
		a.closers = append(a.closers, s)
		store = s
	default:
		return fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}

	a.results = cache.Open(ctx, cfg.MaxSize, store, cacheOpts...)
	return nil
}

// buildProvider returns the configured provider wrapped, innermost first,
// in a rate limiter, retries and a circuit breaker. It returns nil for
// provider "none".
func buildProvider(ctx context.Context, cfg config.ProviderConfig, logger *slog.Logger) (lexbridge.Provider, error) {
	var p lexbridge.Provider
	switch cfg.Name {
	case provider.NameNone, "":
		return nil, nil
	case provider.NameGoogle:
		p = provider.NewGoogleProvider(provider.GoogleConfig{
			APIKey:  cfg.Google.APIKey,
			BaseURL: cfg.Google.BaseURL,
			Timeout: cfg.Timeout,
		})
	case provider.NameOpenAI:
		p = provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		})
	case provider.NameGemini:
		g, err := provider.NewGeminiProvider(ctx, provider.GeminiConfig{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
		})
		if err != nil {
			return nil, err
		}
		p = g
	case provider.NameMock:
		p = provider.NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Name)
	}

	base := p
	if cfg.RateLimit.RequestsPerMinute > 0 {
		p = lexbridge.NewRateLimitedProvider(p, lexbridge.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			BurstSize:         cfg.RateLimit.BurstSize,
		})
	}
	if cfg.Retry.MaxRetries > 0 {
		p = lexbridge.NewRetryableProvider(p, lexbridge.RetryConfig{
			MaxRetries: cfg.Retry.MaxRetries,
			BaseDelay:  cfg.Retry.BaseDelay,
			MaxDelay:   cfg.Retry.MaxDelay,
		})
	}
	if cfg.Breaker.MaxFailures > 0 {
		p = provider.NewBreakerProvider(p, provider.BreakerConfig{
			Name:        cfg.Name,
			MaxFailures: cfg.Breaker.MaxFailures,
			OpenTimeout: cfg.Breaker.OpenTimeout,
		}, logger)
	}

	logger.Debug("external provider enabled", "provider", cfg.Name)
	return closerProvider{Provider: p, base: base}, nil
}

// closerProvider keeps the unwrapped provider reachable for Close.
type closerProvider struct {
	lexbridge.Provider
	base lexbridge.Provider
}

func (c closerProvider) Close() error {
	if closer, ok := c.base.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Close flushes the cache and releases backend connections.
func (a *app) Close() error {
	var errs []error
	if a.results != nil {
		errs = append(errs, a.results.Close())
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	return errors.Join(errs...)
}
