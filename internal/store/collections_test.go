package store

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"synopsis/internal/storage"
)

func newTestCollections(t *testing.T) (*CollectionStore, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	s := NewCollections(backend, testLogger())

	current := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		current = current.Add(time.Second)
		return current
	}
	return s, backend
}

func TestAddCollectionRequiresName(t *testing.T) {
	s, _ := newTestCollections(t)

	_, err := s.AddCollection(CollectionFields{Description: "no name"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
	if len(s.Collections()) != 0 {
		t.Error("Rejected creation must not mutate the collections")
	}
}

func TestCollectionLifecycle(t *testing.T) {
	s, _ := newTestCollections(t)

	coll, err := s.AddCollection(CollectionFields{Name: "Favorites of 2024"})
	if err != nil {
		t.Fatalf("AddCollection failed: %v", err)
	}
	if coll.ID == "" {
		t.Error("Expected a non-empty id")
	}
	if coll.ContentIDs == nil || len(coll.ContentIDs) != 0 {
		t.Error("New collection should start with an empty id list")
	}

	name := "Best of 2024"
	applied, err := s.UpdateCollection(coll.ID, CollectionPatch{Name: &name})
	if err != nil || !applied {
		t.Fatalf("UpdateCollection failed: applied=%v err=%v", applied, err)
	}
	got, ok := s.GetCollection(coll.ID)
	if !ok || got.Name != "Best of 2024" {
		t.Errorf("Rename not applied: %+v", got)
	}
	if !got.UpdatedAt.After(coll.UpdatedAt) {
		t.Error("updatedAt not refreshed")
	}

	applied, err = s.DeleteCollection(coll.ID)
	if err != nil || !applied {
		t.Fatalf("DeleteCollection failed: applied=%v err=%v", applied, err)
	}
	if len(s.Collections()) != 0 {
		t.Error("Collection not deleted")
	}
}

func TestCollectionUnknownIDNoOp(t *testing.T) {
	s, _ := newTestCollections(t)

	name := "x"
	applied, err := s.UpdateCollection("no-such-id", CollectionPatch{Name: &name})
	if err != nil || applied {
		t.Errorf("Expected no-op: applied=%v err=%v", applied, err)
	}
	applied, err = s.DeleteCollection("no-such-id")
	if err != nil || applied {
		t.Errorf("Expected no-op: applied=%v err=%v", applied, err)
	}
	applied, err = s.AddItem("no-such-id", "content-1")
	if err != nil || applied {
		t.Errorf("Expected no-op: applied=%v err=%v", applied, err)
	}
}

func TestCollectionMembership(t *testing.T) {
	s, _ := newTestCollections(t)
	coll, err := s.AddCollection(CollectionFields{Name: "Queue"})
	if err != nil {
		t.Fatal(err)
	}

	applied, err := s.AddItem(coll.ID, "content-1")
	if err != nil || !applied {
		t.Fatalf("AddItem failed: applied=%v err=%v", applied, err)
	}
	applied, err = s.AddItem(coll.ID, "content-2")
	if err != nil || !applied {
		t.Fatalf("AddItem failed: applied=%v err=%v", applied, err)
	}

	// Adding an id twice is an idempotent success
	applied, err = s.AddItem(coll.ID, "content-1")
	if err != nil || !applied {
		t.Errorf("Duplicate add should succeed: applied=%v err=%v", applied, err)
	}
	got, _ := s.GetCollection(coll.ID)
	if !reflect.DeepEqual(got.ContentIDs, []string{"content-1", "content-2"}) {
		t.Errorf("Wrong membership: %v", got.ContentIDs)
	}

	applied, err = s.RemoveItem(coll.ID, "content-1")
	if err != nil || !applied {
		t.Fatalf("RemoveItem failed: applied=%v err=%v", applied, err)
	}
	got, _ = s.GetCollection(coll.ID)
	if !reflect.DeepEqual(got.ContentIDs, []string{"content-2"}) {
		t.Errorf("Wrong membership after removal: %v", got.ContentIDs)
	}

	// Removing an absent id succeeds without changing anything
	applied, err = s.RemoveItem(coll.ID, "content-1")
	if err != nil || !applied {
		t.Errorf("Absent removal should succeed: applied=%v err=%v", applied, err)
	}
}

func TestCollectionsPersistenceRoundTrip(t *testing.T) {
	s, backend := newTestCollections(t)
	coll, err := s.AddCollection(CollectionFields{Name: "Queue", IsPublic: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddItem(coll.ID, "content-1"); err != nil {
		t.Fatal(err)
	}

	reloaded := NewCollections(backend, testLogger())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(s.Collections(), reloaded.Collections()) {
		t.Errorf("Collections differ after reload:\nbefore: %+v\nafter:  %+v",
			s.Collections(), reloaded.Collections())
	}
}

func TestCollectionsIndependentOfContent(t *testing.T) {
	backend := storage.NewMemoryBackend()
	content := New(backend, testLogger())
	collections := NewCollections(backend, testLogger())

	if _, err := content.AddMovie(MovieFields{Title: "t", ImageURL: "u", Synopsis: "s"}); err != nil {
		t.Fatal(err)
	}
	if _, err := collections.AddCollection(CollectionFields{Name: "Queue"}); err != nil {
		t.Fatal(err)
	}

	// Each store reloads only its own document
	reloadedContent := New(backend, testLogger())
	if err := reloadedContent.Load(); err != nil {
		t.Fatalf("Content load failed: %v", err)
	}
	reloadedCollections := NewCollections(backend, testLogger())
	if err := reloadedCollections.Load(); err != nil {
		t.Fatalf("Collections load failed: %v", err)
	}
	if len(reloadedContent.Items()) != 1 || len(reloadedCollections.Collections()) != 1 {
		t.Errorf("Documents interfere: %d items, %d collections",
			len(reloadedContent.Items()), len(reloadedCollections.Collections()))
	}
}
