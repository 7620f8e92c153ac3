package middleware

import (
	"encoding/json"
	"net/http"
)

// writeProblem writes the same {"error": "..."} body the router uses.
func writeProblem(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
