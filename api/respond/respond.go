// Package respond writes JSON responses for the API handlers.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kilianp07/predtrack/core/tracker"
)

// JSON encodes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Error maps err to a status code and writes it as {"error": "..."}.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, tracker.ErrNotFound) {
		status = http.StatusNotFound
	}
	JSON(w, status, map[string]string{"error": err.Error()})
}
