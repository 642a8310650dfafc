package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

type memoryStore struct {
	mu     sync.Mutex
	token  string
	ttl    time.Duration
	sets   int
	clears int
}

func (s *memoryStore) Get(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *memoryStore) Set(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.ttl = token, ttl
	s.sets++
	return nil
}

func (s *memoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.ttl = "", 0
	s.clears++
	return nil
}

func signToken(t *testing.T, id string, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        id,
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("app-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// fakeApp mimics the mobile app: it issues numbered tokens and only accepts
// the most recent one unless acceptAll is set.
type fakeApp struct {
	t         *testing.T
	mu        sync.Mutex
	logins    int
	current   string
	acceptAll bool
	loginCode int
}

func (a *fakeApp) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var body loginRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email != "bridge@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if a.loginCode != 0 {
			w.WriteHeader(a.loginCode)
			return
		}

		a.mu.Lock()
		a.logins++
		a.current = signToken(a.t, fmt.Sprintf("tok-%d", a.logins), time.Now().Add(time.Hour))
		token := a.current
		a.mu.Unlock()

		_ = json.NewEncoder(w).Encode(loginResponse{Token: token})
	})
	mux.HandleFunc("/api/barbershops/shop-a/bookings", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		ok := a.acceptAll || r.Header.Get("Authorization") == "Bearer "+a.current
		a.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"client":"Juma"}]`))
	})
	return mux
}

func newTestClient(t *testing.T, app *fakeApp, store TokenStore) *Client {
	t.Helper()
	srv := httptest.NewServer(app.handler())
	t.Cleanup(srv.Close)

	return NewClient(Config{
		BaseURL:  srv.URL + "/",
		Email:    "bridge@example.com",
		Password: "secret",
	}, store, zerolog.Nop())
}

func TestClient_Bookings_LogsInOnceAndCaches(t *testing.T) {
	app := &fakeApp{t: t}
	store := &memoryStore{}
	client := newTestClient(t, app, store)

	for i := 0; i < 3; i++ {
		raw, err := client.Bookings(context.Background(), "shop-a")
		if err != nil {
			t.Fatalf("Bookings returned error: %v", err)
		}
		if !strings.Contains(string(raw), "Juma") {
			t.Fatalf("unexpected payload %s", raw)
		}
	}

	if app.logins != 1 {
		t.Fatalf("expected a single login, got %d", app.logins)
	}
	if store.ttl <= 0 || store.ttl > time.Hour {
		t.Fatalf("unexpected cache ttl %s", store.ttl)
	}
}

func TestClient_Bookings_RefreshesExpiredToken(t *testing.T) {
	app := &fakeApp{t: t, acceptAll: true}
	store := &memoryStore{token: signToken(t, "stale", time.Now().Add(-time.Minute))}
	client := newTestClient(t, app, store)

	if _, err := client.Bookings(context.Background(), "shop-a"); err != nil {
		t.Fatalf("Bookings returned error: %v", err)
	}
	if app.logins != 1 {
		t.Fatalf("expected refresh of expired token, got %d logins", app.logins)
	}
	if store.token == "" || store.sets != 1 {
		t.Fatalf("expected refreshed token cached")
	}
}

func TestClient_Bookings_RetriesOnceOnUnauthorized(t *testing.T) {
	app := &fakeApp{t: t}
	// Unexpired but revoked: the app no longer accepts it.
	store := &memoryStore{token: signToken(t, "revoked", time.Now().Add(time.Hour))}
	client := newTestClient(t, app, store)

	if _, err := client.Bookings(context.Background(), "shop-a"); err != nil {
		t.Fatalf("Bookings returned error: %v", err)
	}
	if app.logins != 1 {
		t.Fatalf("expected one refresh after 401, got %d", app.logins)
	}
	if store.clears != 1 || store.token != app.current {
		t.Fatalf("expected revoked token evicted and replaced, clears=%d", store.clears)
	}
}

func TestClient_Bookings_UnauthorizedEvictsWhenRefreshFails(t *testing.T) {
	app := &fakeApp{t: t, loginCode: http.StatusServiceUnavailable}
	store := &memoryStore{token: signToken(t, "revoked", time.Now().Add(time.Hour))}
	client := newTestClient(t, app, store)

	if _, err := client.Bookings(context.Background(), "shop-a"); err == nil {
		t.Fatalf("expected error when refresh fails")
	}
	if store.token != "" || store.clears != 1 {
		t.Fatalf("rejected token must not stay cached, token=%q clears=%d", store.token, store.clears)
	}
}

func TestClient_Bookings_LoginFailure(t *testing.T) {
	app := &fakeApp{t: t, loginCode: http.StatusInternalServerError}
	client := newTestClient(t, app, &memoryStore{})

	if _, err := client.Bookings(context.Background(), "shop-a"); err == nil {
		t.Fatalf("expected error when login fails")
	}
}

func TestClient_TTL(t *testing.T) {
	client := NewClient(Config{}, &memoryStore{}, zerolog.Nop())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return now }

	if got := client.ttl("garbage"); got != 0 {
		t.Fatalf("expected 0 for malformed token, got %s", got)
	}
	if got := client.ttl(signToken(t, "a", now.Add(10*time.Minute))); got != 10*time.Minute-expirySkew {
		t.Fatalf("unexpected ttl %s", got)
	}
	if got := client.ttl(signToken(t, "b", now.Add(-time.Minute))); got > 0 {
		t.Fatalf("expired token must have non-positive ttl, got %s", got)
	}
}
