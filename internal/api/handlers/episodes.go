package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"synopsis/internal/store"
)

// EpisodeHandler serves season and episode mutations. All operations
// resolve the full id chain through the owning series; a chain that does
// not resolve is a 404.
type EpisodeHandler struct {
	store  *store.Store
	logger *logrus.Logger
}

// NewEpisodeHandler creates a new episode handler
func NewEpisodeHandler(st *store.Store, logger *logrus.Logger) *EpisodeHandler {
	return &EpisodeHandler{
		store:  st,
		logger: logger,
	}
}

// AddSeason appends a season to a series
func (h *EpisodeHandler) AddSeason(w http.ResponseWriter, r *http.Request) {
	var fields store.SeasonFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	applied, err := h.store.AddSeason(chi.URLParam(r, "contentID"), fields)
	writeMutation(w, applied, err)
}

// AddEpisode appends an episode to a season
func (h *EpisodeHandler) AddEpisode(w http.ResponseWriter, r *http.Request) {
	var fields store.EpisodeFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	applied, err := h.store.AddEpisode(
		chi.URLParam(r, "contentID"),
		chi.URLParam(r, "seasonID"),
		fields,
	)
	writeMutation(w, applied, err)
}

// UpdateEpisode merges a partial update into an episode
func (h *EpisodeHandler) UpdateEpisode(w http.ResponseWriter, r *http.Request) {
	var patch store.EpisodePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	applied, err := h.store.UpdateEpisode(
		chi.URLParam(r, "contentID"),
		chi.URLParam(r, "seasonID"),
		chi.URLParam(r, "episodeID"),
		patch,
	)
	writeMutation(w, applied, err)
}

// MarkWatched sets or clears an episode's watched flag
func (h *EpisodeHandler) MarkWatched(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Watched bool `json:"watched"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	applied, err := h.store.MarkEpisodeWatched(
		chi.URLParam(r, "contentID"),
		chi.URLParam(r, "seasonID"),
		chi.URLParam(r, "episodeID"),
		payload.Watched,
	)
	writeMutation(w, applied, err)
}
