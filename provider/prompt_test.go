package provider

import (
	"errors"
	"strings"
	"testing"

	"github.com/ZaguanLabs/lexbridge"
)

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt(Request{Text: "good night", SourceLang: "en", TargetLang: "sw"})

	if !strings.Contains(prompt, "from English into Swahili") {
		t.Error("Prompt should name source and target languages")
	}
	if !strings.Contains(prompt, `"translation"`) {
		t.Error("Prompt should describe the response format")
	}

	prompt = buildSystemPrompt(Request{Text: "x", TargetLang: "tw"})
	if !strings.Contains(prompt, "from the source language into") {
		t.Error("Prompt should fall back when the source is unknown")
	}
}

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(Request{Text: `say "hi"`})
	if msg != `{"text":"say \"hi\""}` {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestParseTranslation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{"translation key", `{"translation": "usiku mwema"}`, "usiku mwema", false},
		{"other single key", `{"result": "o daaro"}`, "o daaro", false},
		{"bare string", `"kaabo"`, "kaabo", false},
		{"markdown fence", "```json\n{\"translation\": \"asante\"}\n```", "asante", false},
		{"ambiguous object", `{"a": "x", "b": "y"}`, "", true},
		{"array", `["x"]`, "", true},
		{"plain text", `usiku mwema`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTranslation(tt.content, "test")
			if tt.wantErr {
				var perr *lexbridge.ProviderError
				if !errors.As(err, &perr) {
					t.Fatalf("expected ProviderError, got %v", err)
				}
				if perr.Retryable {
					t.Error("format errors should not be retryable")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTranslation failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("429 Too Many Requests"), true},
		{errors.New("dial tcp: connection refused"), true},
		{errors.New("Service Unavailable"), true},
		{errors.New("invalid api key"), false},
	}

	for _, tt := range tests {
		if got := isRetryableError(tt.err); got != tt.want {
			t.Errorf("isRetryableError(%q) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestValidateRequest(t *testing.T) {
	if err := validateRequest(Request{Text: " ", TargetLang: "sw"}); err == nil {
		t.Error("expected error for blank text")
	}
	if err := validateRequest(Request{Text: "hi"}); err == nil {
		t.Error("expected error for missing target")
	}
	if err := validateRequest(Request{Text: "hi", TargetLang: "sw"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
