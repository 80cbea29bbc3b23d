// Package config loads lexbridge settings from a YAML file, LEXBRIDGE_*
// environment variables and provider credential variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Cache backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
)

// Backends lists every cache backend in display order.
var Backends = []string{BackendNone, BackendMemory, BackendFile, BackendRedis, BackendSQLite, BackendMySQL}

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Provider ProviderConfig `mapstructure:"provider"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type ResolverConfig struct {
	Pivot string `mapstructure:"pivot" validate:"required"`
	// PhrasebookFile replaces the embedded phrase tables when set.
	PhrasebookFile string `mapstructure:"phrasebook_file" validate:"omitempty,file"`
}

type CacheConfig struct {
	Backend string        `mapstructure:"backend" validate:"oneof=none memory file redis sqlite mysql"`
	MaxSize int           `mapstructure:"max_size" validate:"gt=0"`
	TTL     time.Duration `mapstructure:"ttl" validate:"gte=0"`
	// Path is the snapshot file (file backend) or database file (sqlite).
	Path  string      `mapstructure:"path"`
	Redis RedisConfig `mapstructure:"redis"`
	MySQL MySQLConfig `mapstructure:"mysql"`
}

type RedisConfig struct {
	URL       string `mapstructure:"url" validate:"omitempty,url"`
	TTL       int    `mapstructure:"ttl" validate:"gte=0"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type MySQLConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	TLS      bool   `mapstructure:"tls"`
}

type ProviderConfig struct {
	Name      string          `mapstructure:"name" validate:"oneof=none google openai gemini mock"`
	Timeout   time.Duration   `mapstructure:"timeout" validate:"gte=0"`
	Google    GoogleConfig    `mapstructure:"google"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Gemini    GeminiConfig    `mapstructure:"gemini"`
	Retry     RetryConfig     `mapstructure:"retry"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Breaker   BreakerConfig   `mapstructure:"breaker"`
}

type GoogleConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type RetryConfig struct {
	MaxRetries int           `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	BaseDelay  time.Duration `mapstructure:"base_delay" validate:"gte=0"`
	MaxDelay   time.Duration `mapstructure:"max_delay" validate:"gte=0"`
}

type RateLimitConfig struct {
	// RequestsPerMinute of zero disables rate limiting.
	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"gte=0"`
	BurstSize         int `mapstructure:"burst_size" validate:"gte=0"`
}

type BreakerConfig struct {
	// MaxFailures of zero disables the circuit breaker.
	MaxFailures uint32        `mapstructure:"max_failures"`
	OpenTimeout time.Duration `mapstructure:"open_timeout" validate:"gte=0"`
}

// Loader reads configuration with viper and validates it.
type Loader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

// NewLoader creates a loader. An empty configFile searches ./lexbridge.yaml
// and $HOME/.config/lexbridge/lexbridge.yaml.
func NewLoader(configFile string) (*Loader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("lexbridge")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lexbridge")
	}

	return &Loader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

// Viper exposes the underlying viper instance so the CLI can bind flags.
func (loader *Loader) Viper() *viper.Viper {
	return loader.viper
}

// Load reads, decodes and validates the configuration.
func (loader *Loader) Load() (*Config, error) {
	v := loader.viper

	setDefaults(v)

	v.SetEnvPrefix("LEXBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Provider credentials use their conventional variable names.
	credentials := map[string]string{
		"provider.google.api_key": "GOOGLE_TRANSLATE_API_KEY",
		"provider.openai.api_key": "OPENAI_API_KEY",
		"provider.gemini.api_key": "GEMINI_API_KEY",
		"cache.mysql.password":    "LEXBRIDGE_MYSQL_PASSWORD",
	}
	for key, env := range credentials {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	cfg.Resolver.Pivot = strings.ToLower(strings.TrimSpace(cfg.Resolver.Pivot))
	cfg.Cache.Backend = strings.ToLower(cfg.Cache.Backend)
	cfg.Provider.Name = strings.ToLower(cfg.Provider.Name)

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetDefault("resolver.pivot", "english")
	v.SetDefault("resolver.phrasebook_file", "")

	v.SetDefault("cache.backend", BackendFile)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "0s")
	v.SetDefault("cache.path", "lexbridge-cache.json")
	v.SetDefault("cache.redis.url", "")
	v.SetDefault("cache.redis.ttl", 0)
	v.SetDefault("cache.redis.key_prefix", "lexbridge:")
	v.SetDefault("cache.mysql.host", "localhost")
	v.SetDefault("cache.mysql.port", 3306)
	v.SetDefault("cache.mysql.database", "lexbridge")
	v.SetDefault("cache.mysql.username", "lexbridge")
	v.SetDefault("cache.mysql.tls", false)

	v.SetDefault("provider.name", "none")
	v.SetDefault("provider.timeout", "10s")
	v.SetDefault("provider.google.base_url", "")
	v.SetDefault("provider.openai.model", "gpt-4o-mini")
	v.SetDefault("provider.openai.base_url", "")
	v.SetDefault("provider.gemini.model", "gemini-2.0-flash")
	v.SetDefault("provider.retry.max_retries", 2)
	v.SetDefault("provider.retry.base_delay", "200ms")
	v.SetDefault("provider.retry.max_delay", "2s")
	v.SetDefault("provider.rate_limit.requests_per_minute", 0)
	v.SetDefault("provider.rate_limit.burst_size", 0)
	v.SetDefault("provider.breaker.max_failures", 5)
	v.SetDefault("provider.breaker.open_timeout", "30s")
}
