package stubserver

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeError emits the {message, details} error body clients parse.
func writeError(w http.ResponseWriter, status int, msg string, details map[string]string) {
	writeJSON(w, status, ErrorResponse{Message: msg, Details: details})
}
