package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteBackup(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")

	path, err := WriteBackup(dir, []byte(`[{"id":"1"}]`), 7)
	if err != nil {
		t.Fatalf("WriteBackup failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read backup: %v", err)
	}
	if string(data) != `[{"id":"1"}]` {
		t.Errorf("Backup content mismatch: %s", data)
	}
	if !strings.HasPrefix(filepath.Base(path), "synopsis-") {
		t.Errorf("Unexpected backup name: %s", path)
	}
}

func TestPruneKeepsNewest(t *testing.T) {
	dir := t.TempDir()

	// Older snapshots sort first by name
	names := []string{
		"synopsis-20240101-000000.json",
		"synopsis-20240102-000000.json",
		"synopsis-20240103-000000.json",
		"unrelated.txt",
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	if err := pruneBackups(dir, 2); err != nil {
		t.Fatalf("pruneBackups failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "synopsis-20240101-000000.json")); !os.IsNotExist(err) {
		t.Error("Oldest snapshot should be pruned")
	}
	for _, name := range []string{
		"synopsis-20240102-000000.json",
		"synopsis-20240103-000000.json",
		"unrelated.txt",
	} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("File %s should survive pruning: %v", name, err)
		}
	}
}
