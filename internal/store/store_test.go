package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFavorites_AddListOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.Favorites()
	ctx := context.Background()

	for _, id := range []string{"ps-colors", "sc-physics", "el-math"} {
		if err := repo.Add(ctx, id); err != nil {
			t.Fatalf("Add(%s): %v", id, err)
		}
	}

	ids, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"ps-colors", "sc-physics", "el-math"}
	if len(ids) != len(want) {
		t.Fatalf("List length = %d, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestFavorites_AddIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	repo := s.Favorites()
	ctx := context.Background()

	if err := repo.Add(ctx, "ps-colors"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := repo.Add(ctx, "ps-colors"); err != nil {
		t.Fatalf("second Add: %v", err)
	}

	ids, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("List length = %d, want 1", len(ids))
	}
}

func TestFavorites_Remove(t *testing.T) {
	s := openTestStore(t)
	repo := s.Favorites()
	ctx := context.Background()

	if err := repo.Add(ctx, "ps-colors"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := repo.Remove(ctx, "ps-colors"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := repo.Remove(ctx, "never-added"); err != nil {
		t.Fatalf("Remove of non-favorite: %v", err)
	}

	fav, err := repo.IsFavorite(ctx, "ps-colors")
	if err != nil {
		t.Fatalf("IsFavorite: %v", err)
	}
	if fav {
		t.Error("expected ps-colors to no longer be a favorite")
	}
}

func TestFavorites_Toggle(t *testing.T) {
	s := openTestStore(t)
	repo := s.Favorites()
	ctx := context.Background()

	on, err := repo.Toggle(ctx, "tr-compsci")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !on {
		t.Error("first toggle should favorite")
	}

	on, err = repo.Toggle(ctx, "tr-compsci")
	if err != nil {
		t.Fatalf("second Toggle: %v", err)
	}
	if on {
		t.Error("second toggle should unfavorite")
	}

	ids, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("List length = %d, want 0", len(ids))
	}
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EDUBRIDGE_DB", filepath.Join(dir, "nested", "edubridge.db"))

	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if p != filepath.Join(dir, "nested", "edubridge.db") {
		t.Errorf("path = %q", p)
	}
}
