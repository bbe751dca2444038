package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// offlineHint is what the mock provider answers once its queue is drained,
// so SQLPRACTICE_LLM_PROVIDER=mock gives a working hint flow without a key.
const offlineHint = `{"hint":"Name the tables the prompt mentions, then decide which columns to SELECT and which rows to keep with WHERE."}`

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockJSON is a shorthand for a successful canned response.
func MockJSON(content string) MockResponse {
	return MockResponse{Content: json.RawMessage(content)}
}

// MockProvider replays canned responses in order and records every request.
// With a Fallback set it keeps answering after the queue is empty;
// otherwise it reports ErrProviderUnavailable.
type MockProvider struct {
	mu       sync.Mutex
	queue    []MockResponse
	Fallback *MockResponse
	Calls    []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// NewOfflineProvider returns a mock that answers every hint request with a
// generic study tip.
func NewOfflineProvider() *MockProvider {
	fb := MockJSON(offlineHint)
	return &MockProvider{Fallback: &fb}
}

func (m *MockProvider) next() (MockResponse, bool) {
	if len(m.queue) > 0 {
		r := m.queue[0]
		m.queue = m.queue[1:]
		return r, true
	}
	if m.Fallback != nil {
		return *m.Fallback, true
	}
	return MockResponse{}, false
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	r, ok := m.next()
	switch {
	case !ok:
		return nil, &ErrProviderUnavailable{}
	case r.Err != nil:
		return nil, r.Err
	}
	if err := validateResponse(req.Schema, r.Content); err != nil {
		return nil, err
	}
	return &Response{Content: r.Content, Usage: r.Usage, Model: "mock", StopReason: "end"}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
