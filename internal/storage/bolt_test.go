package storage

import (
	"bytes"
	"path/filepath"
	"testing"
)

func openTestBackend(t *testing.T) *BoltBackend {
	t.Helper()
	backend, err := OpenBolt(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open backend: %v", err)
	}
	t.Cleanup(func() { backend.Close() })
	return backend
}

func TestGetAbsentKey(t *testing.T) {
	backend := openTestBackend(t)

	value, err := backend.Get("missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != nil {
		t.Errorf("Expected nil for absent key, got %v", value)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	backend := openTestBackend(t)

	doc := []byte(`[{"id":"1"}]`)
	if err := backend.Set("content", doc); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err := backend.Get("content")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(value, doc) {
		t.Errorf("Expected %s, got %s", doc, value)
	}
}

func TestSetOverwrites(t *testing.T) {
	backend := openTestBackend(t)

	if err := backend.Set("content", []byte("old")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := backend.Set("content", []byte("new")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err := backend.Get("content")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != "new" {
		t.Errorf("Expected overwritten value, got %s", value)
	}
}

func TestDelete(t *testing.T) {
	backend := openTestBackend(t)

	if err := backend.Set("content", []byte("data")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := backend.Delete("content"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	value, err := backend.Get("content")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != nil {
		t.Errorf("Expected nil after delete, got %v", value)
	}

	// Deleting an absent key is not an error
	if err := backend.Delete("content"); err != nil {
		t.Errorf("Delete of absent key failed: %v", err)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	backend := openTestBackend(t)

	if err := backend.Set("content", []byte("a")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := backend.Set("collections", []byte("b")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	content, _ := backend.Get("content")
	collections, _ := backend.Get("collections")
	if string(content) != "a" || string(collections) != "b" {
		t.Errorf("Documents interfere: content=%s collections=%s", content, collections)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	backend, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("Failed to open backend: %v", err)
	}
	if err := backend.Set("content", []byte("persisted")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	backend.Close()

	reopened, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("Failed to reopen backend: %v", err)
	}
	defer reopened.Close()

	value, err := reopened.Get("content")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != "persisted" {
		t.Errorf("Expected data to survive reopen, got %s", value)
	}
}
