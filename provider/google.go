package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"time"

	"resty.dev/v3"

	"github.com/ZaguanLabs/lexbridge"
)

const (
	defaultGoogleBaseURL = "https://translation.googleapis.com"
	googleTranslatePath  = "/language/translate/v2"
)

// GoogleProvider implements Provider using the Cloud Translation v2 REST API.
type GoogleProvider struct {
	client *resty.Client
}

// GoogleConfig holds configuration for the Google provider.
type GoogleConfig struct {
	APIKey  string        // API key (GOOGLE_TRANSLATE_API_KEY)
	BaseURL string        // Custom base URL (optional, used by tests)
	Timeout time.Duration // Per-request HTTP timeout (default 10s)
}

type googleRequest struct {
	Q      string `json:"q"`
	Source string `json:"source,omitempty"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

type googleError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewGoogleProvider creates a new Google provider.
func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = lexbridge.DefaultExternalTimeout
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("X-Goog-Api-Key", cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("User-Agent", lexbridge.UserAgent())
	client.SetTimeout(timeout)

	return &GoogleProvider{client: client}
}

// Close releases the underlying HTTP client.
func (p *GoogleProvider) Close() error {
	return p.client.Close()
}

// Translate translates one phrase.
func (p *GoogleProvider) Translate(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var result googleResponse
	response, err := p.client.R().
		SetContext(ctx).
		SetBody(googleRequest{
			Q:      req.Text,
			Source: req.SourceLang,
			Target: req.TargetLang,
			Format: "text",
		}).
		SetResult(&result).
		Post(googleTranslatePath)
	if err != nil {
		return nil, &lexbridge.ProviderError{
			Message:   "Google Translate request failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if response.IsError() {
		return nil, &lexbridge.ProviderError{
			Message:   fmt.Sprintf("Google Translate returned %d", response.StatusCode()),
			Cause:     googleErrorCause(response.StatusCode(), response.String()),
			Retryable: retryableStatus(response.StatusCode()),
		}
	}

	if len(result.Data.Translations) == 0 {
		return nil, &lexbridge.ProviderError{
			Message: fmt.Sprintf("empty response from Google Translate: %s", response.String()),
		}
	}

	// format=text should return plain text, but entities still show up for
	// some language pairs.
	text := html.UnescapeString(result.Data.Translations[0].TranslatedText)
	return &Response{Text: text, Provider: NameGoogle}, nil
}

func googleErrorCause(status int, body string) error {
	var e googleError
	if err := json.Unmarshal([]byte(body), &e); err != nil || e.Error.Message == "" {
		return errors.New(http.StatusText(status))
	}
	return fmt.Errorf("%s (%s)", e.Error.Message, e.Error.Status)
}

var _ Provider = (*GoogleProvider)(nil)
