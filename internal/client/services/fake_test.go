package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/examprep-admin/internal/client/client"
)

type call struct {
	Method string
	Path   string
	Query  url.Values
	Body   string
	Auth   string
}

// fakeAPI is an httptest admin backend whose routes are set per test.
// Handlers return the envelope data, or an apiStatus to fail the call.
type fakeAPI struct {
	t      *testing.T
	router chi.Router
	srv    *httptest.Server

	mu    sync.Mutex
	calls []call
}

type apiStatus struct {
	code    int
	message string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{t: t, router: chi.NewRouter()}
	f.srv = httptest.NewServer(http.StripPrefix("/api/v1", f.record(f.router)))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		c := call{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   string(body),
			Auth:   r.Header.Get("Authorization"),
		}
		f.mu.Lock()
		f.calls = append(f.calls, c)
		f.mu.Unlock()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callKey{}, c)))
	})
}

type callKey struct{}

func (f *fakeAPI) on(method, path string, fn func(call) any) {
	f.router.MethodFunc(method, path, func(w http.ResponseWriter, r *http.Request) {
		data := fn(r.Context().Value(callKey{}).(call))
		w.Header().Set("Content-Type", "application/json")
		if st, ok := data.(apiStatus); ok {
			w.WriteHeader(st.code)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": st.message})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	})
}

func (f *fakeAPI) reply(method, path string, data any) {
	f.on(method, path, func(call) any { return data })
}

func (f *fakeAPI) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (f *fakeAPI) last() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(f.t, f.calls)
	return f.calls[len(f.calls)-1]
}

func (f *fakeAPI) client(store client.SessionStore) *client.HTTPClient {
	f.t.Helper()
	c, err := client.NewHTTPClient(f.srv.URL+"/api/v1", store)
	require.NoError(f.t, err)
	return c
}
