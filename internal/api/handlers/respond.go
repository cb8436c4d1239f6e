package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"synopsis/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeMutation maps a store mutation result onto an HTTP response: an
// unapplied mutation is a 404 (the store's observable no-op), a
// validation failure a 400, anything else a 500.
func writeMutation(w http.ResponseWriter, applied bool, err error) {
	if err != nil {
		var verr *store.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !applied {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
