// Package handler implements the JSON request/response contracts of the API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"reqdojo/internal/completion"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

// upstreamStatus maps a completion failure to the HTTP status the contract
// endpoints mirror: the upstream status for non-2xx replies, 500 for an
// unreachable or misconfigured service.
func upstreamStatus(err error) int {
	var sErr *completion.StatusError
	if errors.As(err, &sErr) {
		return sErr.StatusCode
	}
	return http.StatusInternalServerError
}
