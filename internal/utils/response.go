package utils

import "time"

// Response is the standard JSON envelope used by every endpoint.
type Response struct {
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"` // always present, null when empty
	Timestamp string      `json:"timestamp"`
}

func NewResponse(status int, message string, data interface{}) Response {
	return Response{
		Status:    status,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewSuccessResponse creates a success Response with status 200.
func NewSuccessResponse(message string, data interface{}) Response {
	return NewResponse(200, message, data)
}

// NewErrorResponse creates an error Response with nil data.
func NewErrorResponse(status int, message string) Response {
	return NewResponse(status, message, nil)
}
