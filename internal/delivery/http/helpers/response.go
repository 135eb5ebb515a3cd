package helpers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every failed request: a single message under
// the "error" key.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// OKResponse is the minimal acknowledgement body.
// swagger:model OKResponse
type OKResponse struct {
	OK bool `json:"ok"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and
// encodes v as the response body.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONError sets Content-Type to application/json, writes statusCode,
// and encodes an ErrorResponse with the given message.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}
