// Package api exposes the invoice service over HTTP.
package api

import (
	"encoding/json"
	"net/http"
)

// detailResponse is the error payload. Detail is a message or a list of
// field errors.
type detailResponse struct {
	Detail any `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes a JSON error payload with the given status code.
func writeDetail(w http.ResponseWriter, status int, detail any) {
	writeJSON(w, status, detailResponse{Detail: detail})
}
