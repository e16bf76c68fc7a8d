package models

// ErrorDetail is the structured failure result produced by the service layer.
type ErrorDetail struct {
	// Code is a JSON-RPC or application-specific error code.
	Code int `json:"code"`
	// Message is a human-readable description naming the violated constraint.
	Message string `json:"message"`
	// Data holds additional context, such as the attempted path and operation.
	Data interface{} `json:"data,omitempty"`
}

// ErrorResponse wraps an ErrorDetail for HTTP error bodies.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
