package storefront

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"team-eats/client"
)

// stubBackend is a scripted stand-in for the ordering API. Tests register
// handlers per route; every request is recorded so call ordering can be
// asserted.
type stubBackend struct {
	mux *http.ServeMux
	srv *httptest.Server

	mu    sync.Mutex
	calls []string
}

func newStub(t *testing.T) (*stubBackend, *client.Client) {
	t.Helper()
	s := &stubBackend{mux: http.NewServeMux()}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		s.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.srv.Close)

	c := client.New(s.srv.URL)
	c.SetToken("test-token")
	return s, c
}

func (s *stubBackend) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *stubBackend) countCalls(methodAndPath string) int {
	n := 0
	for _, c := range s.recorded() {
		if c == methodAndPath {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"error": detail})
}
