// Package provider implements remote translation backends for the
// resolver's external step.
package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/ZaguanLabs/lexbridge"
)

// Provider is an alias to the main package interface for convenience.
type Provider = lexbridge.Provider

// Request is an alias to the main package type.
type Request = lexbridge.ProviderRequest

// Response is an alias to the main package type.
type Response = lexbridge.ProviderResponse

// Backend names accepted by configuration.
const (
	NameGoogle = "google"
	NameOpenAI = "openai"
	NameGemini = "gemini"
	NameMock   = "mock"
	NameNone   = "none"
)

// Names lists every backend name in display order.
var Names = []string{NameNone, NameGoogle, NameOpenAI, NameGemini, NameMock}

func validateRequest(req Request) error {
	if strings.TrimSpace(req.Text) == "" {
		return &lexbridge.ProviderError{Message: "empty text"}
	}
	if req.TargetLang == "" {
		return &lexbridge.ProviderError{Message: "missing target language"}
	}
	return nil
}

// isRetryableError guesses from the message whether a transport or API
// failure is transient. Context errors never are.
func isRetryableError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"connection reset",
		"temporary",
		"unavailable",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// retryableStatus reports whether an HTTP status is worth retrying.
func retryableStatus(code int) bool {
	return code == 429 || code >= 500
}
