// Package testutil provides a mock Hi-Rez API server for tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// MockResponse defines a canned response for one API method.
type MockResponse struct {
	StatusCode int
	Body       string
}

// MockAPI is a configurable mock Hi-Rez API server. Requests arrive as
// /{method}json/{devId}/{signature}/[{session}/]{timestamp}[/{arg}]* and are
// dispatched on the method segment.
type MockAPI struct {
	server *httptest.Server

	mu        sync.Mutex
	responses map[string]MockResponse
	handlers  map[string]http.HandlerFunc
	counts    map[string]int
	sessionID string
}

// NewMockAPI starts a mock server that answers createsession with a fixed
// token and every other method with whatever was configured for it.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		responses: make(map[string]MockResponse),
		handlers:  make(map[string]http.HandlerFunc),
		counts:    make(map[string]int),
		sessionID: "mock-session-token",
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := methodOf(r.URL.Path)

		mock.mu.Lock()
		mock.counts[method]++
		handler, hasHandler := mock.handlers[method]
		response, hasResponse := mock.responses[method]
		session := mock.sessionID
		mock.mu.Unlock()

		if hasHandler {
			handler(w, r)
			return
		}
		if hasResponse {
			w.WriteHeader(response.StatusCode)
			fmt.Fprint(w, response.Body)
			return
		}

		switch method {
		case "createsession":
			fmt.Fprintf(w, `{"ret_msg":"Approved","session_id":%q}`, session)
		case "ping":
			fmt.Fprint(w, `"SmiteAPI (ver 3.24)"`)
		default:
			fmt.Fprint(w, "[]")
		}
	}))

	return mock
}

// URL returns the mock server base URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Respond configures a canned response for a method.
func (m *MockAPI) Respond(method string, statusCode int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[method] = MockResponse{StatusCode: statusCode, Body: body}
}

// Handle installs a custom handler for a method.
func (m *MockAPI) Handle(method string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[method] = handler
}

// ClearResponse removes a canned response, restoring the default behavior.
func (m *MockAPI) ClearResponse(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.responses, method)
}

// Count returns how many requests a method has received.
func (m *MockAPI) Count(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[method]
}

// SessionID returns the token createsession hands out.
func (m *MockAPI) SessionID() string {
	return m.sessionID
}

// methodOf extracts the API method from the first path segment, which has
// the response format suffixed ("getplayerjson" -> "getplayer").
func methodOf(path string) string {
	segment := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(segment, '/'); i >= 0 {
		segment = segment[:i]
	}
	return strings.TrimSuffix(segment, "json")
}
