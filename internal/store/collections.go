package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"synopsis/internal/models"
	"synopsis/internal/storage"
)

// CollectionsKey is the document key the collections persist under,
// independent of the content document
const CollectionsKey = "collections"

// CollectionStore owns the user's named collections. Same discipline as
// the content store: copy, transform, persist, publish on success.
type CollectionStore struct {
	backend storage.Backend
	key     string
	logger  *logrus.Logger

	now   func() time.Time
	newID func() string

	mu          sync.RWMutex
	collections []models.Collection
}

// NewCollections creates a collection store over the given backend
func NewCollections(backend storage.Backend, logger *logrus.Logger) *CollectionStore {
	return &CollectionStore{
		backend: backend,
		key:     CollectionsKey,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Load reads the persisted collections into memory
func (s *CollectionStore) Load() error {
	raw, err := s.backend.Get(s.key)
	if err != nil {
		return fmt.Errorf("storage read failed: %w", err)
	}
	if raw == nil {
		s.mu.Lock()
		s.collections = nil
		s.mu.Unlock()
		return nil
	}

	var collections []models.Collection
	if err := json.Unmarshal(raw, &collections); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	s.mu.Lock()
	s.collections = collections
	s.mu.Unlock()
	s.logger.WithField("collections", len(collections)).Info("Collections loaded")
	return nil
}

func (s *CollectionStore) mutate(transform func([]models.Collection) ([]models.Collection, bool)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Collection, len(s.collections))
	for i := range s.collections {
		next[i] = s.collections[i].Clone()
	}

	next, applied := transform(next)
	if !applied {
		return false, nil
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return false, fmt.Errorf("failed to encode collections: %w", err)
	}
	if err := s.backend.Set(s.key, raw); err != nil {
		return false, fmt.Errorf("storage write failed: %w", err)
	}

	s.collections = next
	return true, nil
}

// CollectionFields holds the caller-supplied attributes of a new collection
type CollectionFields struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

// AddCollection creates an empty collection
func (s *CollectionStore) AddCollection(fields CollectionFields) (models.Collection, error) {
	if fields.Name == "" {
		return models.Collection{}, requiredErr("name")
	}

	now := s.now()
	coll := models.Collection{
		ID:          s.newID(),
		Name:        fields.Name,
		Description: fields.Description,
		ContentIDs:  []string{},
		IsPublic:    fields.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.mutate(func(collections []models.Collection) ([]models.Collection, bool) {
		return append(collections, coll.Clone()), true
	})
	if err != nil {
		return models.Collection{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":   coll.ID,
		"name": coll.Name,
	}).Info("Collection created")
	return coll, nil
}

// CollectionPatch is a partial update of a collection
type CollectionPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"isPublic"`
}

// UpdateCollection merges patch into the collection matching id
func (s *CollectionStore) UpdateCollection(id string, patch CollectionPatch) (bool, error) {
	if patch.Name != nil && *patch.Name == "" {
		return false, requiredErr("name")
	}

	return s.mutate(func(collections []models.Collection) ([]models.Collection, bool) {
		for i := range collections {
			if collections[i].ID != id {
				continue
			}
			if patch.Name != nil {
				collections[i].Name = *patch.Name
			}
			if patch.Description != nil {
				collections[i].Description = *patch.Description
			}
			if patch.IsPublic != nil {
				collections[i].IsPublic = *patch.IsPublic
			}
			collections[i].UpdatedAt = s.now()
			return collections, true
		}
		return collections, false
	})
}

// DeleteCollection removes the collection matching id
func (s *CollectionStore) DeleteCollection(id string) (bool, error) {
	return s.mutate(func(collections []models.Collection) ([]models.Collection, bool) {
		for i := range collections {
			if collections[i].ID == id {
				return append(collections[:i], collections[i+1:]...), true
			}
		}
		return collections, false
	})
}

// AddItem appends contentID to the collection. Adding an id that is
// already present succeeds without a write; an unknown collection id is an
// observable no-op.
func (s *CollectionStore) AddItem(collectionID, contentID string) (bool, error) {
	found := false
	applied, err := s.mutate(func(collections []models.Collection) ([]models.Collection, bool) {
		for i := range collections {
			if collections[i].ID != collectionID {
				continue
			}
			found = true
			if collections[i].Contains(contentID) {
				return collections, false
			}
			collections[i].ContentIDs = append(collections[i].ContentIDs, contentID)
			collections[i].UpdatedAt = s.now()
			return collections, true
		}
		return collections, false
	})
	if err != nil {
		return false, err
	}
	return applied || found, nil
}

// RemoveItem removes contentID from the collection. Removing an id that is
// not present succeeds without a write.
func (s *CollectionStore) RemoveItem(collectionID, contentID string) (bool, error) {
	found := false
	applied, err := s.mutate(func(collections []models.Collection) ([]models.Collection, bool) {
		for i := range collections {
			if collections[i].ID != collectionID {
				continue
			}
			found = true
			for j, id := range collections[i].ContentIDs {
				if id == contentID {
					collections[i].ContentIDs = append(collections[i].ContentIDs[:j], collections[i].ContentIDs[j+1:]...)
					collections[i].UpdatedAt = s.now()
					return collections, true
				}
			}
			return collections, false
		}
		return collections, false
	})
	if err != nil {
		return false, err
	}
	return applied || found, nil
}

// Collections returns a deep copy of all collections in stored order
func (s *CollectionStore) Collections() []models.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Collection, len(s.collections))
	for i := range s.collections {
		out[i] = s.collections[i].Clone()
	}
	return out
}

// GetCollection returns a copy of the collection matching id
func (s *CollectionStore) GetCollection(id string) (models.Collection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.collections {
		if s.collections[i].ID == id {
			return s.collections[i].Clone(), true
		}
	}
	return models.Collection{}, false
}
