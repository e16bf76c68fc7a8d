package models

import "encoding/json"

// JSONRPCRequest represents a JSON-RPC 2.0 request object.
type JSONRPCRequest struct {
	// JSONRPC must be "2.0".
	JSONRPC string `json:"jsonrpc"`
	// ID is the client-chosen request identifier, echoed in the response.
	ID interface{} `json:"id"`
	// Method is the name of the operation to invoke.
	Method string `json:"method"`
	// Params holds the raw parameters; parsing is deferred until the method
	// is known.
	Params json.RawMessage `json:"params"`
}

// JSONRPCErrorData carries application-specific context inside a JSON-RPC
// error object.
type JSONRPCErrorData struct {
	// Path is the filesystem path involved in the error, if any.
	Path string `json:"path,omitempty"`
	// Operation is the operation being performed when the error occurred.
	Operation string `json:"operation,omitempty"`
	// Timestamp records when the error occurred.
	Timestamp string `json:"timestamp,omitempty"`
	// Details provides any further specifics.
	Details string `json:"details,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error object.
type JSONRPCError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    *JSONRPCErrorData `json:"data,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response object. Exactly one of
// Result and Error is set.
type JSONRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      interface{}   `json:"id"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *JSONRPCError `json:"error,omitempty"`
}
