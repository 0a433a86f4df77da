package testsupport

import (
	"context"
	"testing"

	"movieroulette/internal/config"
	"movieroulette/internal/seen"
)

// MustOpenStore opens a seen.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *seen.Store {
	t.Helper()

	store, err := seen.Open(cfg, nil)
	if err != nil {
		t.Fatalf("seen.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// MustAddSeen records a movie as seen and fails the test on error.
func MustAddSeen(t testing.TB, store *seen.Store, id, title string) {
	t.Helper()

	if err := store.Add(context.Background(), id, title); err != nil {
		t.Fatalf("store.Add(%s): %v", id, err)
	}
}
