package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"synopsis/internal/store"
)

// CollectionHandler serves the user's named collections
type CollectionHandler struct {
	store  *store.CollectionStore
	logger *logrus.Logger
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(st *store.CollectionStore, logger *logrus.Logger) *CollectionHandler {
	return &CollectionHandler{
		store:  st,
		logger: logger,
	}
}

// List serves all collections in stored order
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	collections := h.store.Collections()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"collections": collections,
		"total":       len(collections),
	})
}

// Create adds an empty collection
func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var fields store.CollectionFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	coll, err := h.store.AddCollection(fields)
	if err != nil {
		writeMutation(w, false, err)
		return
	}
	writeJSON(w, http.StatusCreated, coll)
}

// Update merges a partial update into a collection
func (h *CollectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch store.CollectionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	applied, err := h.store.UpdateCollection(chi.URLParam(r, "collectionID"), patch)
	writeMutation(w, applied, err)
}

// Delete removes a collection
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	applied, err := h.store.DeleteCollection(chi.URLParam(r, "collectionID"))
	writeMutation(w, applied, err)
}

// AddItem adds a content id to a collection
func (h *CollectionHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	applied, err := h.store.AddItem(
		chi.URLParam(r, "collectionID"),
		chi.URLParam(r, "contentID"),
	)
	writeMutation(w, applied, err)
}

// RemoveItem removes a content id from a collection
func (h *CollectionHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	applied, err := h.store.RemoveItem(
		chi.URLParam(r, "collectionID"),
		chi.URLParam(r, "contentID"),
	)
	writeMutation(w, applied, err)
}
