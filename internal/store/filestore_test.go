package store

import (
	"context"
	"errors"
	"sort"
	"testing"
)

func TestFileStore(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	defer st.Close()

	runStoreContract(t, st)
}

// runStoreContract exercises the behavior every backend must share.
func runStoreContract(t *testing.T, st Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		if _, err := st.Get(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("put then get", func(t *testing.T) {
		payload := []byte(`{"model":"gpt-4"}`)
		if err := st.Put(ctx, "user-1", payload); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := st.Get(ctx, "user-1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != string(payload) {
			t.Errorf("round trip mismatch: %q", got)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		if err := st.Put(ctx, "user-1", []byte("v2")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, _ := st.Get(ctx, "user-1")
		if string(got) != "v2" {
			t.Errorf("expected latest value, got %q", got)
		}
	})

	t.Run("list", func(t *testing.T) {
		if err := st.Put(ctx, "user-2", []byte("x")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		ids, err := st.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		sort.Strings(ids)
		if len(ids) != 2 || ids[0] != "user-1" || ids[1] != "user-2" {
			t.Errorf("unexpected ids: %v", ids)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := st.Delete(ctx, "user-1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := st.Get(ctx, "user-1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		// Deleting a missing record is not an error.
		if err := st.Delete(ctx, "user-1"); err != nil {
			t.Errorf("second delete errored: %v", err)
		}
	})
}

func TestFileStore_PathTraversal(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	defer st.Close()
	ctx := context.Background()

	// A hostile id must not escape the store directory.
	if err := st.Put(ctx, "../escape", []byte("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, err := st.Get(ctx, "../escape")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "x" {
		t.Errorf("round trip mismatch: %q", got)
	}
}
