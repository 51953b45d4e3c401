// Package utils holds the JSON response envelope helpers shared by the
// HTTP layer.
package utils

import (
	"encoding/json"
	"net/http"
)

// authenticationErrorCode is the machine-readable code carried by every
// authentication failure response, regardless of the internal cause.
const authenticationErrorCode = "AUTHENTICATION_ERROR"

// AuthErrorResponse is the body of a 401 rejection. Internal error kinds
// collapse into this one shape: a human-readable message, no stack trace
// or internal structure.
type AuthErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// ErrorResponse represents a generic structured error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteOK writes a 200 OK response with the given body
func WriteOK(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, data)
}

// WriteAuthenticationError writes the 401 rejection envelope. Responses
// carry CORS allowances so browser clients can read the failure even when
// the rejection short-circuits ahead of any CORS middleware.
func WriteAuthenticationError(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Authentication required"
	}

	setCORSHeaders(w)
	return WriteJSON(w, http.StatusUnauthorized, AuthErrorResponse{
		Success: false,
		Error:   message,
		Code:    authenticationErrorCode,
	})
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return WriteJSON(w, http.StatusNotFound, ErrorResponse{
		Error:   "not_found",
		Message: message,
	})
}

// WriteInternalServerError writes a 500 Internal Server Error response
func WriteInternalServerError(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: message,
	})
}

// setCORSHeaders applies the standard CORS allowances
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
	w.Header().Set("Access-Control-Allow-Methods", "GET,PUT,POST,DELETE,OPTIONS")
}
