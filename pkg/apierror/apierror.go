// Package apierror is the error envelope for the JSON inventory feed. The
// rendered pages use the HTML error view instead.
package apierror

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, HTTPStatus: status}
}

func BadRequest(message string) *APIError {
	return New("bad_request", message, http.StatusBadRequest)
}

func Internal(message string) *APIError {
	return New("internal_error", message, http.StatusInternalServerError)
}

// Write sends the envelope as the response body with its status code.
func (e *APIError) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.HTTPStatus)
	_ = json.NewEncoder(w).Encode(e)
}
