// Package shared centralizes the JSON response envelope and domain error
// translation so every handler speaks the same contract.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "padron/pkg/domain-errors"
)

// Response is the boundary envelope for single-item results.
type Response struct {
	Succeeded bool   `json:"succeeded"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}

// WriteJSON writes a success envelope with the given status.
func WriteJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Succeeded: true, Message: message, Data: data})
}

// WriteData writes a raw JSON body without the envelope (list responses).
func WriteData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError translates a domain error into an HTTP response. Coded errors
// surface their message; anything unclassified becomes a generic 500 so
// internals never leak to callers.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal Server Error. Please contact support."

	var de *dErrors.Error
	if errors.As(err, &de) && de.Code != dErrors.CodeInternal {
		status = dErrors.ToHTTPStatus(de.Code)
		message = de.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Succeeded: false, Message: message})
}
