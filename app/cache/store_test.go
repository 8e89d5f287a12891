package cache

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_PutGet(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put("p1", `{"programme": {}}`); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	raw, ok, err := store.Get("p1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !ok {
		t.Fatal("Expected a cache hit for p1")
	}
	if raw != `{"programme": {}}` {
		t.Errorf("Unexpected payload: %s", raw)
	}

	_, ok, err = store.Get("missing")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if ok {
		t.Error("Expected a miss for an unknown key")
	}
}

func TestStore_PutOverwrites(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put("p1", "old"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := store.Put("p1", "new"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	raw, _, err := store.Get("p1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if raw != "new" {
		t.Errorf("Expected the updated payload, got '%s'", raw)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(keys) != 1 {
		t.Errorf("Expected a single key after overwrite, got %v", keys)
	}
}

func TestStore_Delete(t *testing.T) {
	store := openTestStore(t)

	if err := store.Put("p1", "x"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := store.Delete("p1"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, ok, _ := store.Get("p1"); ok {
		t.Error("Expected p1 to be gone after delete")
	}

	// Deleting a missing key is fine
	if err := store.Delete("never-there"); err != nil {
		t.Errorf("Expected no error deleting a missing key, got: %v", err)
	}
}

func TestStore_Prune(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"p1", "p2", "p3"} {
		if err := store.Put(id, "payload "+id); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
	}

	pruned, err := store.Prune([]string{"p1", "p3"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if pruned != 1 {
		t.Errorf("Expected 1 entry pruned, got %d", pruned)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "p1" || keys[1] != "p3" {
		t.Errorf("Expected exactly [p1 p3] after pruning, got %v", keys)
	}
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	if err := store.Put("p1", "persisted"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	store.Close()

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	raw, ok, err := reopened.Get("p1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !ok || raw != "persisted" {
		t.Errorf("Expected the entry to survive a reopen, got ok=%v raw=%q", ok, raw)
	}

	if _, err := os.Stat(filepath.Join(dir, dbFileName)); err != nil {
		t.Errorf("Expected the database file on disk: %v", err)
	}
}
