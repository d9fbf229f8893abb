package testsupport

import (
	"context"
	"testing"

	"boardhook/internal/board"
	"boardhook/internal/config"
	"boardhook/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

// SeedProject upserts a project record for tests.
func SeedProject(t testing.TB, st *store.Store, project board.Project) {
	t.Helper()

	if err := st.UpsertProject(context.Background(), project); err != nil {
		t.Fatalf("store.UpsertProject: %v", err)
	}
}

// SeedTask upserts a task record for tests.
func SeedTask(t testing.TB, st *store.Store, task board.Task) {
	t.Helper()

	if err := st.UpsertTask(context.Background(), task); err != nil {
		t.Fatalf("store.UpsertTask: %v", err)
	}
}
