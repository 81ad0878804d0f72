package localstore

import (
	"path/filepath"
	"testing"
)

// stores under test share one behavioral contract.
func runStoreContract(t *testing.T, store Store) {
	t.Helper()

	if _, ok, err := store.Get("cart:u1"); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	if err := store.Set("cart:u1", `[{"itemId":"p1"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := store.Get("cart:u1")
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if v != `[{"itemId":"p1"}]` {
		t.Fatalf("unexpected value %q", v)
	}

	if err := store.Set("cart:u1", `[]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, _ = store.Get("cart:u1")
	if v != `[]` {
		t.Fatalf("expected overwritten value, got %q", v)
	}

	if err := store.Delete("cart:u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get("cart:u1"); ok {
		t.Fatal("expected key to be gone after delete")
	}

	// deleting an absent key is a no-op
	if err := store.Delete("cart:never"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestMemoryStoreContract(t *testing.T) {
	runStoreContract(t, NewMemory())
}

func TestSQLiteStoreContract(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "local.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()

	runStoreContract(t, store)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Set("wishlist:u2", `[{"itemId":"p9"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	v, ok, err := reopened.Get("wishlist:u2")
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%v err=%v", ok, err)
	}
	if v != `[{"itemId":"p9"}]` {
		t.Fatalf("unexpected value %q", v)
	}
}

func TestSQLiteRequiresPath(t *testing.T) {
	if _, err := OpenSQLite("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSQLiteClosedStoreErrors(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "local.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_ = store.Close()

	if err := store.Set("k", "v"); err == nil {
		t.Fatal("expected error on closed store")
	}
}
