package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

// fakeBackend is a tiny admin API: access cookies are real JWTs, so expiry
// drives the 401s the client has to recover from.
type fakeBackend struct {
	key []byte
	srv *httptest.Server

	mu             sync.Mutex
	accessTTL      time.Duration
	refreshStatus  int
	refreshGate    chan struct{}
	alwaysDeny     bool
	refreshCalls   int
	logoutCalls    int
	resourceCalls  int
	echoBodies     []string
	lastAuthHeader string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		key:           []byte("test-signing-key"),
		accessTTL:     time.Hour,
		refreshStatus: http.StatusOK,
	}

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", b.login)
		r.Post("/auth/refresh-token", b.refresh)
		r.Post("/auth/logout", b.logout)
		r.Post("/auth/verify-otp", b.verify)
		r.Get("/resource", b.resource)
		r.Post("/echo", b.echo)
		r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "database down"})
		})
		r.Post("/questions", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"success": false, "message": "text is required"})
		})
	})

	b.srv = httptest.NewServer(r)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *fakeBackend) baseURL() string { return b.srv.URL + "/api/v1" }

func (b *fakeBackend) configure(fn func(b *fakeBackend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b)
}

func (b *fakeBackend) counts() (refresh, logout, resource int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refreshCalls, b.logoutCalls, b.resourceCalls
}

func (b *fakeBackend) issueAccess(w http.ResponseWriter, ttl time.Duration) bool {
	claims := jwt.RegisteredClaims{
		Subject:   "admin-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.key)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": err.Error()})
		return false
	}
	http.SetCookie(w, &http.Cookie{Name: accessCookie, Value: tok, Path: "/", HttpOnly: true})
	return true
}

func (b *fakeBackend) authorized(r *http.Request) bool {
	c, err := r.Cookie(accessCookie)
	if err != nil {
		return false
	}
	_, err = jwt.ParseWithClaims(c.Value, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return b.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return err == nil
}

func (b *fakeBackend) login(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	ttl := b.accessTTL
	b.mu.Unlock()

	if !b.issueAccess(w, ttl) {
		return
	}
	http.SetCookie(w, &http.Cookie{Name: refreshCookie, Value: "r1", Path: "/", HttpOnly: true})
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"user": map[string]any{"id": "admin-1", "email": "root@example.com"}},
	})
}

func (b *fakeBackend) refresh(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	b.refreshCalls++
	gate, status := b.refreshGate, b.refreshStatus
	b.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if status != http.StatusOK {
		writeJSON(w, status, map[string]any{"success": false, "message": "refresh token expired"})
		return
	}
	if b.issueAccess(w, time.Hour) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

func (b *fakeBackend) logout(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	b.logoutCalls++
	b.mu.Unlock()
	writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "no session"})
}

func (b *fakeBackend) verify(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.lastAuthHeader = r.Header.Get("Authorization")
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (b *fakeBackend) resource(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.resourceCalls++
	deny := b.alwaysDeny
	b.mu.Unlock()

	if deny || !b.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "access token expired"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"ok": true}})
}

func (b *fakeBackend) echo(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.echoBodies = append(b.echoBodies, string(body))
	b.mu.Unlock()

	if !b.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": json.RawMessage(body)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type fakeNav struct {
	mu          sync.Mutex
	location    string
	navigations []string
}

func (n *fakeNav) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

func (n *fakeNav) Navigate(location string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.location = location
	n.navigations = append(n.navigations, location)
}

func (n *fakeNav) history() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.navigations...)
}

// loggedInClient returns a client whose jar holds the cookies from a login.
// With an expired accessTTL every protected call starts with a 401.
func loggedInClient(t *testing.T, b *fakeBackend, accessTTL time.Duration, withMarker bool) (*HTTPClient, *MemorySessionStore, *fakeNav) {
	t.Helper()
	store := &MemorySessionStore{}
	nav := &fakeNav{location: "/dashboard"}

	c, err := NewHTTPClient(b.baseURL(), store, WithNavigator(nav), WithTimeout(5*time.Second))
	require.NoError(t, err)

	b.configure(func(b *fakeBackend) { b.accessTTL = accessTTL })
	_, err = c.Do(context.Background(), http.MethodPost, "/auth/login", map[string]string{"email": "root@example.com", "password": "pw"})
	require.NoError(t, err)

	if withMarker {
		require.NoError(t, store.SetSession(context.Background(), "root@example.com"))
	}
	return c, store, nav
}
