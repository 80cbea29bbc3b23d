package provider

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/ZaguanLabs/lexbridge"
)

// GeminiProvider implements Provider using Google's Gemini models.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	temperature float32
}

// GeminiConfig holds configuration for the Gemini provider.
type GeminiConfig struct {
	APIKey      string  // Gemini API key (GEMINI_API_KEY)
	Model       string  // Model to use (default: "gemini-2.0-flash")
	Temperature float32 // Temperature for generation (default: 0.2)
	BaseURL     string  // Custom base URL (optional)
}

// NewGeminiProvider creates a Gemini client.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	return &GeminiProvider{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

// Translate translates one phrase.
func (p *GeminiProvider) Translate(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model,
		genai.Text(buildUserMessage(req)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(buildSystemPrompt(req), genai.RoleUser),
			Temperature:       genai.Ptr(p.temperature),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return nil, &lexbridge.ProviderError{
			Message:   "Gemini API call failed",
			Cause:     err,
			Retryable: geminiRetryable(err),
		}
	}

	content := resp.Text()
	if content == "" {
		return nil, &lexbridge.ProviderError{
			Message:   "no response from Gemini",
			Retryable: true,
		}
	}

	text, err := parseTranslation(content, NameGemini)
	if err != nil {
		return nil, err
	}

	return &Response{Text: text, Provider: NameGemini}, nil
}

func geminiRetryable(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.Code)
	}
	return isRetryableError(err)
}

var _ Provider = (*GeminiProvider)(nil)
