package server

import (
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"thinkbyte/pkg/store"
	"thinkbyte/services/api/internal/app"
)

func TestLoginRateLimited(t *testing.T) {
	redis := miniredis.RunT(t)
	a, err := app.New(app.Config{
		Store:    store.NewMemoryStore(),
		Sessions: store.NewMemorySessionStore(),
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(a.Close)
	s, err := New(Config{
		App:                     a,
		RedisAddr:               redis.Addr(),
		LoginRateLimitPerMinute: 2,
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	body := map[string]string{"email": "alex@example.com", "password": "password123"}
	for i := 0; i < 2; i++ {
		rec := doJSON(t, s, http.MethodPost, "/api/auth/login", "", body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d returned %d, want 401", i, rec.Code)
		}
	}
	rec := doJSON(t, s, http.MethodPost, "/api/auth/login", "", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Fatalf("expected Retry-After header")
	}
}
