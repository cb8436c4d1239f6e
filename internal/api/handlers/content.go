package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"synopsis/internal/models"
	"synopsis/internal/store"
)

// ContentHandler serves the content collection
type ContentHandler struct {
	store  *store.Store
	logger *logrus.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(st *store.Store, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{
		store:  st,
		logger: logger,
	}
}

// List serves the filtered collection. Query params: type (all, movies,
// series) and q (case-insensitive search over title and synopsis).
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.FilterType(r.URL.Query().Get("type"))
	switch filter {
	case "", models.FilterAll:
		filter = models.FilterAll
	case models.FilterMovies, models.FilterSeries:
	default:
		writeError(w, http.StatusBadRequest, "Unknown filter type")
		return
	}

	items := h.store.Filtered(filter, r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
		"total": len(items),
	})
}

// Watchlist serves the want-to-watch and currently-watching lists
func (h *ContentHandler) Watchlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Watchlist())
}

// CreateMovie adds a movie to the collection
func (h *ContentHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var fields store.MovieFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	item, err := h.store.AddMovie(fields)
	if err != nil {
		h.logger.WithError(err).Warn("Movie rejected")
		writeMutation(w, false, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// CreateSeries adds a series to the collection
func (h *ContentHandler) CreateSeries(w http.ResponseWriter, r *http.Request) {
	var fields store.SeriesFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	item, err := h.store.AddSeries(fields)
	if err != nil {
		h.logger.WithError(err).Warn("Series rejected")
		writeMutation(w, false, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Get serves a single item by id
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := h.store.Get(chi.URLParam(r, "contentID"))
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Update merges a partial update into an item
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch store.ContentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	applied, err := h.store.UpdateContent(chi.URLParam(r, "contentID"), patch)
	writeMutation(w, applied, err)
}

// Delete removes an item from the collection
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	applied, err := h.store.DeleteContent(chi.URLParam(r, "contentID"))
	writeMutation(w, applied, err)
}

// ToggleFavorite flips an item's favorite flag
func (h *ContentHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	applied, err := h.store.ToggleFavorite(chi.URLParam(r, "contentID"))
	writeMutation(w, applied, err)
}

// SetWatchStatus sets or clears an item's watch status
func (h *ContentHandler) SetWatchStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		WatchStatus models.WatchStatus `json:"watchStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	applied, err := h.store.SetWatchStatus(chi.URLParam(r, "contentID"), payload.WatchStatus)
	writeMutation(w, applied, err)
}
