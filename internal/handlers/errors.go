package handlers

import "github.com/danielgtaylor/huma/v2"

// ErrorResponse is the error model for every error response: a single
// machine-readable message, no internal details.
type ErrorResponse struct {
	Status  int    `json:"-"`
	Message string `doc:"Error message" json:"error"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

func (e *ErrorResponse) GetStatus() int {
	return e.Status
}

// Replace huma's default problem-document errors so every error body is
// {"error": "..."}. Wrapped causes are dropped; they are logged server-side.
func init() {
	huma.NewError = func(status int, message string, _ ...error) huma.StatusError {
		return &ErrorResponse{
			Status:  status,
			Message: message,
		}
	}
}
