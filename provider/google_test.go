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

func TestGoogleProvider_Translate(t *testing.T) {
	tests := []struct {
		name              string
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)
		want              string
		wantRetryable     bool
		wantErrorString   string
	}{
		{
			name: "success",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/language/translate/v2", r.URL.Path)
				assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))

				var body googleRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, googleRequest{Q: "good night", Source: "en", Target: "yo", Format: "text"}, body)

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"data": {"translations": [{"translatedText": "&Ograve; d&aacute;&agrave;r&ograve;"}]}}`))
			},
			want: "Ò dáàrò",
		},
		{
			name: "server error is retryable",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error": {"code": 503, "message": "Backend unavailable", "status": "UNAVAILABLE"}}`))
			},
			wantRetryable:   true,
			wantErrorString: "Backend unavailable",
		},
		{
			name: "bad key is not retryable",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "API key not valid", "status": "PERMISSION_DENIED"}}`))
			},
			wantErrorString: "API key not valid",
		},
		{
			name: "unparseable error body",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(`<html>bad gateway</html>`))
			},
			wantRetryable:   true,
			wantErrorString: "Bad Gateway",
		},
		{
			name: "empty translations",
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"data": {"translations": []}}`))
			},
			wantErrorString: "empty response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			p := NewGoogleProvider(GoogleConfig{APIKey: "test-key", BaseURL: server.URL})
			defer p.Close()

			got, err := p.Translate(t.Context(), Request{Text: "good night", SourceLang: "en", TargetLang: "yo"})
			if tt.wantErrorString != "" {
				var perr *lexbridge.ProviderError
				require.True(t, errors.As(err, &perr), "got %v", err)
				assert.Contains(t, err.Error(), tt.wantErrorString)
				assert.Equal(t, tt.wantRetryable, perr.Retryable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, NameGoogle, got.Provider)
		})
	}
}

func TestGoogleProvider_ThroughExternalResolver(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body googleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// Registry identifiers are mapped to ISO codes before the call.
		assert.Equal(t, "en", body.Source)
		assert.Equal(t, "ha", body.Target)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"translations": [{"translatedText": " sai gobe "}]}}`))
	}))
	defer server.Close()

	p := NewGoogleProvider(GoogleConfig{APIKey: "k", BaseURL: server.URL})
	defer p.Close()

	ext := lexbridge.NewExternalResolver(p)
	got, ok := ext.Resolve(t.Context(), "see you tomorrow", "english", "hausa")
	require.True(t, ok)
	assert.Equal(t, "sai gobe", got.Text)
	assert.Equal(t, lexbridge.ConfidenceExternal, got.Confidence)
}
