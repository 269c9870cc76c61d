package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonny/jyotish/backend/internal/contracts"
	"github.com/wonny/jyotish/backend/internal/profile"
)

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps domain errors onto HTTP statuses. Anything
// unrecognized is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var (
		invalidRange *contracts.InvalidRangeError
		incomplete   *contracts.IncompleteNatalChartError
		total        *contracts.TotalResolutionError
	)
	switch {
	case errors.As(err, &invalidRange):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &incomplete):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &total):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, profile.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
