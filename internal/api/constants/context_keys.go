package constants

// Context keys for validated requests
const (
	// Contact context keys
	ContextKeyContact = "contact"

	// Request metadata
	ContextKeyRequestID = "RequestID"
)

// HeaderRequestID carries the request ID in both directions
const HeaderRequestID = "X-Request-ID"
