// Package httputil centralizes JSON response writing and domain error
// translation so all handlers emit consistent envelopes.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "registrar/pkg/domain-errors"
)

// WriteJSON writes v as a JSON body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a coded error into an HTTP response. Internal errors
// deliberately omit the description so storage details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	if code != dErrors.CodeInternal {
		body["error_description"] = dErrors.MessageOf(err)
	}
	WriteJSON(w, ToHTTPStatus(code), body)
}

// ToHTTPStatus maps domain error codes to HTTP status codes.
func ToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
