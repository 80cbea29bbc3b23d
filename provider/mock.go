package provider

import (
	"context"
	"strings"
	"sync"

	"github.com/ZaguanLabs/lexbridge"
)

// MockProvider is an in-memory provider for tests and offline demos.
// Translations are keyed by target code and lowercased text.
type MockProvider struct {
	mu           sync.Mutex
	translations map[string]map[string]string
	err          error
	callCount    int
	lastRequest  *Request
}

// NewMockProvider creates a mock with a few English to Swahili and Yoruba
// phrases.
func NewMockProvider() *MockProvider {
	m := &MockProvider{translations: make(map[string]map[string]string)}
	m.Add("sw", "good night", "usiku mwema")
	m.Add("sw", "see you tomorrow", "tutaonana kesho")
	m.Add("yo", "good night", "o daaro")
	return m
}

// Add registers a translation into target.
func (m *MockProvider) Add(target, text, translation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.translations[target] == nil {
		m.translations[target] = make(map[string]string)
	}
	m.translations[target][lexbridge.NormalizeText(text)] = translation
}

// FailWith makes every later call return err. Pass nil to recover.
func (m *MockProvider) FailWith(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// Translate returns the registered translation or a non-retryable
// ProviderError.
func (m *MockProvider) Translate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++
	m.lastRequest = &req

	if m.err != nil {
		return nil, m.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if t, ok := m.translations[strings.ToLower(req.TargetLang)][lexbridge.NormalizeText(req.Text)]; ok {
		return &Response{Text: t, Provider: NameMock}, nil
	}
	return nil, &lexbridge.ProviderError{Message: "no mock translation for " + req.Text}
}

// CallCount returns how many times Translate was called.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastRequest returns the last request received, or nil.
func (m *MockProvider) LastRequest() *Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	m.callCount = 0
	m.lastRequest = nil
	m.mu.Unlock()
}

var _ Provider = (*MockProvider)(nil)
