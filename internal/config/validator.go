package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterStructValidation(validateCache, CacheConfig{})
	validate.RegisterStructValidation(validateProvider, ProviderConfig{})

	if err := validate.RegisterTranslation("required_for", trans, func(ut ut.Translator) error {
		return ut.Add("required_for", "{0} is required when {1}", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("required_for", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Param())
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register required_for translation: %w", err)
	}

	return validate, trans, nil
}

// validateCache checks the settings each backend needs.
func validateCache(sl validator.StructLevel) {
	c := sl.Current().Interface().(CacheConfig)

	switch c.Backend {
	case BackendFile, BackendSQLite:
		if c.Path == "" {
			sl.ReportError(c.Path, "path", "Path", "required_for", "backend is "+c.Backend)
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			sl.ReportError(c.Redis.URL, "redis.url", "URL", "required_for", "backend is redis")
		}
	case BackendMySQL:
		if c.MySQL.Host == "" {
			sl.ReportError(c.MySQL.Host, "mysql.host", "Host", "required_for", "backend is mysql")
		}
		if c.MySQL.Database == "" {
			sl.ReportError(c.MySQL.Database, "mysql.database", "Database", "required_for", "backend is mysql")
		}
	}
}

// validateProvider requires the credential of the selected provider.
func validateProvider(sl validator.StructLevel) {
	p := sl.Current().Interface().(ProviderConfig)

	switch p.Name {
	case "google":
		if p.Google.APIKey == "" {
			sl.ReportError(p.Google.APIKey, "google.api_key", "APIKey", "required_for", "provider is google (GOOGLE_TRANSLATE_API_KEY)")
		}
	case "openai":
		if p.OpenAI.APIKey == "" {
			sl.ReportError(p.OpenAI.APIKey, "openai.api_key", "APIKey", "required_for", "provider is openai (OPENAI_API_KEY)")
		}
	case "gemini":
		if p.Gemini.APIKey == "" {
			sl.ReportError(p.Gemini.APIKey, "gemini.api_key", "APIKey", "required_for", "provider is gemini (GEMINI_API_KEY)")
		}
	}
}
