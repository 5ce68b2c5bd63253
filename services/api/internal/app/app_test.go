package app

import (
	"testing"
	"time"

	"thinkbyte/pkg/domain"
	"thinkbyte/pkg/store"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(Config{
		Store:          store.NewMemoryStore(),
		Sessions:       store.NewMemorySessionStore(),
		SentDelay:      5 * time.Millisecond,
		DeliveredDelay: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func registerUser(t *testing.T, a *App, name, email string) domain.User {
	t.Helper()
	user, _, err := a.Register(name, email, "password123", "Testville")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}
