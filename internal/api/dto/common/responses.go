package common

// ErrorResponse is the body of every failed API call
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of a successful call that only carries a message
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewMessageResponse creates a new success response with a simple message
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{
		Success: true,
		Message: message,
	}
}

// NewErrorResponse creates a new error API response
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
