package provider

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaguanLabs/lexbridge"
)

func TestOpenAIProvider_Translate(t *testing.T) {
	tests := []struct {
		name              string
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)
		want              string
		wantRetryable     bool
		wantErr           bool
	}{
		{
			name: "success",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1/chat/completions", r.URL.Path)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				var body struct {
					Model    string `json:"model"`
					Messages []struct {
						Role    string `json:"role"`
						Content string `json:"content"`
					} `json:"messages"`
				}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "gpt-4o-mini", body.Model)
				require.Len(t, body.Messages, 2)
				assert.Contains(t, body.Messages[0].Content, "into Swahili")
				assert.Equal(t, `{"text":"good night"}`, body.Messages[1].Content)

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{
					"id": "chatcmpl-1",
					"object": "chat.completion",
					"model": "gpt-4o-mini",
					"choices": [{
						"index": 0,
						"message": {"role": "assistant", "content": "{\"translation\": \"usiku mwema\"}"},
						"finish_reason": "stop"
					}]
				}`))
			},
			want: "usiku mwema",
		},
		{
			name: "rate limited",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error": {"message": "Rate limit reached", "type": "requests", "code": "rate_limit_exceeded"}}`))
			},
			wantErr:       true,
			wantRetryable: true,
		},
		{
			name: "bad request",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error": {"message": "bad model", "type": "invalid_request_error"}}`))
			},
			wantErr: true,
		},
		{
			name: "no choices",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`))
			},
			wantErr:       true,
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			p := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL + "/v1"})
			got, err := p.Translate(t.Context(), Request{Text: "good night", SourceLang: "en", TargetLang: "sw"})
			if tt.wantErr {
				var perr *lexbridge.ProviderError
				require.True(t, errors.As(err, &perr), "got %v", err)
				assert.Equal(t, tt.wantRetryable, perr.Retryable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, NameOpenAI, got.Provider)
		})
	}
}

func TestOpenAIProvider_RejectsEmptyText(t *testing.T) {
	p := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", BaseURL: "http://127.0.0.1:1"})
	_, err := p.Translate(t.Context(), Request{Text: "", TargetLang: "sw"})
	assert.Error(t, err)
}
