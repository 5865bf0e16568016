package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSyncExampleCreatesFreshFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.example")

	n, err := SyncExample(path, []string{"API_KEY", "DB_HOST"})
	if err != nil {
		t.Fatalf("SyncExample() error = %v", err)
	}
	if n != 2 {
		t.Errorf("SyncExample() = %d, want 2", n)
	}

	got := readBack(t, path)
	if !strings.HasPrefix(got, "# ") {
		t.Errorf("fresh example missing header: %q", got)
	}
	if !strings.Contains(got, "API_KEY=\n") || !strings.Contains(got, "DB_HOST=\n") {
		t.Errorf("example missing bare keys: %q", got)
	}
}

func TestSyncExampleAppendsOnlyMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.example")
	existing := "# custom header kept as-is\nAPI_KEY=\n"
	if err := os.WriteFile(path, []byte(existing), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := SyncExample(path, []string{"API_KEY", "DB_HOST"})
	if err != nil {
		t.Fatalf("SyncExample() error = %v", err)
	}
	if n != 1 {
		t.Errorf("SyncExample() = %d, want 1", n)
	}

	want := "# custom header kept as-is\nAPI_KEY=\n\nDB_HOST=\n"
	if got := readBack(t, path); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestSyncExampleNoopLeavesFileAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.example")
	existing := "API_KEY=\nDB_HOST=\n\n\n# trailing mess left alone"
	if err := os.WriteFile(path, []byte(existing), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := SyncExample(path, []string{"API_KEY", "DB_HOST"})
	if err != nil {
		t.Fatalf("SyncExample() error = %v", err)
	}
	if n != 0 {
		t.Errorf("SyncExample() = %d, want 0", n)
	}
	if got := readBack(t, path); got != existing {
		t.Errorf("no-op sync modified the file: %q", got)
	}
}

func TestSyncExampleRepeatedRunsAddNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.example")
	keys := []string{"API_KEY", "DB_HOST", "CACHE_URL"}

	if _, err := SyncExample(path, keys); err != nil {
		t.Fatalf("first sync error = %v", err)
	}
	first := readBack(t, path)

	n, err := SyncExample(path, keys)
	if err != nil {
		t.Fatalf("second sync error = %v", err)
	}
	if n != 0 {
		t.Errorf("second sync = %d, want 0", n)
	}
	if got := readBack(t, path); got != first {
		t.Errorf("second sync changed the file:\nfirst  = %q\nsecond = %q", first, got)
	}
}

func TestSyncExampleCountsExistingValuedKeysAsPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.example")
	if err := os.WriteFile(path, []byte("API_KEY=placeholder\n"), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := SyncExample(path, []string{"API_KEY"})
	if err != nil {
		t.Fatalf("SyncExample() error = %v", err)
	}
	if n != 0 {
		t.Errorf("SyncExample() = %d, want 0", n)
	}
}
