package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"synopsis/internal/models"
	"synopsis/internal/store"
)

// StatsHandler serves collection statistics and the genre catalogue
type StatsHandler struct {
	store  *store.Store
	logger *logrus.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(st *store.Store, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		store:  st,
		logger: logger,
	}
}

// Stats handles the stats endpoint
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.ComputeStats())
}

// Genres serves the canonical genre list
func (h *StatsHandler) Genres(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"genres": models.Genres})
}
