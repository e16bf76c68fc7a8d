package errors

import (
	"net/http"
	"testing"

	"file-tools-server/internal/models"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		name      string
		errDetail *models.ErrorDetail
		want      int
	}{
		{"nil detail", nil, http.StatusInternalServerError},
		{"parse error", NewParseError("bad json"), http.StatusBadRequest},
		{"invalid request", NewInvalidRequestError("nope"), http.StatusBadRequest},
		{"invalid params", NewInvalidParamsError("bad", nil), http.StatusBadRequest},
		{"method not found", NewMethodNotFoundError("x"), http.StatusNotFound},
		{"internal error", NewInternalError("boom"), http.StatusInternalServerError},
		{"sandbox violation", NewSandboxViolationError("/etc/passwd", "write_file"), http.StatusForbidden},
		{"not a file", NewNotAFileError("/x", "read_file"), http.StatusNotFound},
		{"not a directory", NewNotADirectoryError("/x", "list_files"), http.StatusNotFound},
		{"permission denied", NewPermissionDeniedError("/x", "write_file"), http.StatusForbidden},
		{"io error", NewFileSystemError("/x", "write_file", "disk full"), http.StatusInternalServerError},
		{"decode error", NewDecodeError("/x", "read_file", "not utf-8"), http.StatusUnprocessableEntity},
		{"file too large", NewFileTooLargeError("/x", "read_file", 1<<30, 10), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapErrorToHTTPStatus(tt.errDetail); got != tt.want {
				t.Errorf("MapErrorToHTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToJSONRPCErrorLiftsDataFields(t *testing.T) {
	rpcErr := ToJSONRPCError(NewSandboxViolationError("/etc/passwd", "delete_file"))
	if rpcErr == nil {
		t.Fatal("ToJSONRPCError = nil")
	}
	if rpcErr.Code != CodeSandboxViolation {
		t.Errorf("Code = %d, want %d", rpcErr.Code, CodeSandboxViolation)
	}
	if rpcErr.Data == nil {
		t.Fatal("Data = nil")
	}
	if rpcErr.Data.Path != "/etc/passwd" {
		t.Errorf("Path = %q, want /etc/passwd", rpcErr.Data.Path)
	}
	if rpcErr.Data.Operation != "delete_file" {
		t.Errorf("Operation = %q, want delete_file", rpcErr.Data.Operation)
	}
	if rpcErr.Data.Timestamp == "" {
		t.Error("Timestamp is empty")
	}
}

func TestToJSONRPCErrorNilAndPlainData(t *testing.T) {
	if ToJSONRPCError(nil) != nil {
		t.Error("ToJSONRPCError(nil) != nil")
	}

	rpcErr := ToJSONRPCError(NewErrorDetail(CodeInternalError, "boom", "raw detail"))
	if rpcErr.Data == nil || rpcErr.Data.Details != "raw detail" {
		t.Errorf("Data = %+v, want details carried over", rpcErr.Data)
	}
}

func TestToErrorResponse(t *testing.T) {
	if ToErrorResponse(nil) != nil {
		t.Error("ToErrorResponse(nil) != nil")
	}
	resp := ToErrorResponse(NewNotAFileError("/x", "read_file"))
	if resp == nil || resp.Error.Code != CodeFileSystemError {
		t.Errorf("response = %+v, want filesystem error body", resp)
	}
}
