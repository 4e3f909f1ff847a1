// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// ErrorResponse is the flat error envelope used by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
