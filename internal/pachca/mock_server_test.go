package pachca

import (
	"net/http"
	"net/http/httptest"
	"sync"
)

// mockPachcaServer is a test HTTP server that serves canned Pachca API responses
// and records every request it receives
type mockPachcaServer struct {
	server   *httptest.Server
	handlers map[string]http.HandlerFunc

	mu       sync.Mutex
	requests []*http.Request
}

func newMockPachcaServer() *mockPachcaServer {
	m := &mockPachcaServer{
		handlers: make(map[string]http.HandlerFunc),
	}

	m.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.requests = append(m.requests, r.Clone(r.Context()))
		m.mu.Unlock()

		if handler, ok := m.handlers[r.URL.Path]; ok {
			handler(w, r)
			return
		}

		http.Error(w, "mock not found: "+r.URL.Path, http.StatusNotFound)
	}))

	return m
}

func (m *mockPachcaServer) close() {
	m.server.Close()
}

func (m *mockPachcaServer) addHandler(path string, handler http.HandlerFunc) {
	m.handlers[path] = handler
}

// requestsTo returns the recorded requests for a path, in arrival order
func (m *mockPachcaServer) requestsTo(path string) []*http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*http.Request
	for _, r := range m.requests {
		if r.URL.Path == path {
			out = append(out, r)
		}
	}
	return out
}
