package errors

import (
	"fmt"
	"net/http"
	"time"

	"file-tools-server/internal/models"
)

// JSON-RPC error codes (JSON-RPC 2.0 specification).
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Application-specific error codes.
const (
	// CodeFileSystemError covers filesystem failures. The Data payload
	// carries a "type" discriminator: not_a_file, not_a_directory,
	// permission_denied or io_error.
	CodeFileSystemError = -32001

	// CodeSandboxViolation indicates a mutation attempted outside the
	// permitted sandbox root. Rejected before any filesystem access.
	CodeSandboxViolation = -32002

	// CodeDecodeError indicates file content that could not be interpreted
	// as UTF-8 text.
	CodeDecodeError = -32003

	// CodeFileTooLarge indicates the file exceeds the configured size limit.
	CodeFileTooLarge = -32004
)

// NewErrorDetail creates a new ErrorDetail.
func NewErrorDetail(code int, message string, data interface{}) *models.ErrorDetail {
	return &models.ErrorDetail{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// NewParseError creates an ErrorDetail for malformed JSON input.
func NewParseError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeParseError, "Parse error", map[string]interface{}{"details": details})
}

// NewInvalidRequestError creates an ErrorDetail for invalid JSON-RPC request
// objects.
func NewInvalidRequestError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeInvalidRequest, "Invalid Request", map[string]interface{}{"details": details})
}

// NewMethodNotFoundError creates an ErrorDetail for unknown methods.
func NewMethodNotFoundError(methodName string) *models.ErrorDetail {
	return NewErrorDetail(CodeMethodNotFound, "Method not found", map[string]interface{}{"method": methodName})
}

// NewInvalidParamsError creates an ErrorDetail for invalid operation
// parameters. paramIssues may name the offending fields.
func NewInvalidParamsError(summary string, paramIssues map[string]interface{}) *models.ErrorDetail {
	message := "Invalid params"
	if summary != "" {
		message = summary
	}
	data := map[string]interface{}{"details": message}
	if paramIssues != nil {
		data["param_issues"] = paramIssues
	}
	return NewErrorDetail(CodeInvalidParams, message, data)
}

// NewInternalError creates an ErrorDetail for unexpected server errors.
func NewInternalError(details string) *models.ErrorDetail {
	return NewErrorDetail(CodeInternalError, "Internal error", map[string]interface{}{"details": details})
}

// NewSandboxViolationError creates an ErrorDetail for a mutation attempted
// outside the sandbox root. The message names the attempted path, matching
// the contract that callers see which constraint was violated.
func NewSandboxViolationError(path, operation string) *models.ErrorDetail {
	return NewErrorDetail(CodeSandboxViolation,
		fmt.Sprintf("Modification outside the sandbox root is not allowed. Attempted to modify %s", path),
		map[string]interface{}{
			"path":      path,
			"operation": operation,
			"type":      "sandbox_violation",
		})
}

// NewNotAFileError creates an ErrorDetail for a target that is not an
// existing regular file.
func NewNotAFileError(path, operation string) *models.ErrorDetail {
	return NewErrorDetail(CodeFileSystemError,
		fmt.Sprintf("The path %s is not a valid file", path),
		map[string]interface{}{
			"path":      path,
			"operation": operation,
			"type":      "not_a_file",
		})
}

// NewNotADirectoryError creates an ErrorDetail for a target that is not an
// existing directory.
func NewNotADirectoryError(path, operation string) *models.ErrorDetail {
	return NewErrorDetail(CodeFileSystemError,
		fmt.Sprintf("The path %s is not a valid directory", path),
		map[string]interface{}{
			"path":      path,
			"operation": operation,
			"type":      "not_a_directory",
		})
}

// NewDecodeError creates an ErrorDetail for content that is not valid UTF-8
// text.
func NewDecodeError(path, operation, details string) *models.ErrorDetail {
	return NewErrorDetail(CodeDecodeError,
		fmt.Sprintf("File %s could not be decoded as UTF-8 text", path),
		map[string]interface{}{
			"path":      path,
			"operation": operation,
			"details":   details,
			"type":      "decode_error",
		})
}

// NewPermissionDeniedError creates an ErrorDetail for OS permission failures.
func NewPermissionDeniedError(path, operation string) *models.ErrorDetail {
	return NewErrorDetail(CodeFileSystemError,
		fmt.Sprintf("Permission denied for %s", path),
		map[string]interface{}{
			"path":      path,
			"operation": operation,
			"type":      "permission_denied",
		})
}

// NewFileSystemError creates an ErrorDetail for any other OS-level failure.
// The underlying error text is propagated unmodified in details.
func NewFileSystemError(path, operation, details string) *models.ErrorDetail {
	return NewErrorDetail(CodeFileSystemError, "File system error",
		map[string]interface{}{
			"path":      path,
			"operation": operation,
			"details":   details,
			"type":      "io_error",
		})
}

// NewFileTooLargeError creates an ErrorDetail for files exceeding the
// configured size limit.
func NewFileTooLargeError(path, operation string, sizeBytes int64, maxSizeMB int) *models.ErrorDetail {
	return NewErrorDetail(CodeFileTooLarge,
		fmt.Sprintf("File %s exceeds maximum allowed size of %d MB", path, maxSizeMB),
		map[string]interface{}{
			"path":        path,
			"operation":   operation,
			"size_bytes":  sizeBytes,
			"max_size_mb": maxSizeMB,
			"type":        "file_too_large",
		})
}

// ToErrorResponse converts an ErrorDetail to an HTTP error body.
func ToErrorResponse(errDetail *models.ErrorDetail) *models.ErrorResponse {
	if errDetail == nil {
		return nil
	}
	return &models.ErrorResponse{Error: *errDetail}
}

// ToJSONRPCError converts an ErrorDetail to a JSON-RPC error object,
// lifting the well-known fields out of the Data payload.
func ToJSONRPCError(errDetail *models.ErrorDetail) *models.JSONRPCError {
	if errDetail == nil {
		return nil
	}
	rpcErr := &models.JSONRPCError{
		Code:    errDetail.Code,
		Message: errDetail.Message,
	}
	if errDetail.Data == nil {
		return rpcErr
	}
	data := &models.JSONRPCErrorData{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if dataMap, ok := errDetail.Data.(map[string]interface{}); ok {
		if v, ok := dataMap["path"].(string); ok {
			data.Path = v
		}
		if v, ok := dataMap["operation"].(string); ok {
			data.Operation = v
		}
		if v, ok := dataMap["details"].(string); ok {
			data.Details = v
		}
	} else {
		data.Details = fmt.Sprintf("%v", errDetail.Data)
	}
	rpcErr.Data = data
	return rpcErr
}

// MapErrorToHTTPStatus maps an ErrorDetail to an HTTP status code.
func MapErrorToHTTPStatus(errDetail *models.ErrorDetail) int {
	if errDetail == nil {
		return http.StatusInternalServerError
	}
	switch errDetail.Code {
	case CodeParseError, CodeInvalidRequest, CodeInvalidParams:
		return http.StatusBadRequest
	case CodeMethodNotFound:
		return http.StatusNotFound
	case CodeSandboxViolation:
		return http.StatusForbidden
	case CodeDecodeError:
		return http.StatusUnprocessableEntity
	case CodeFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeFileSystemError:
		if dataMap, ok := errDetail.Data.(map[string]interface{}); ok {
			switch dataMap["type"] {
			case "not_a_file", "not_a_directory":
				return http.StatusNotFound
			case "permission_denied":
				return http.StatusForbidden
			}
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
