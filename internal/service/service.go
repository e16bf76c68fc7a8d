package service

import (
	stdErrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"file-tools-server/internal/config"
	"file-tools-server/internal/errors"
	"file-tools-server/internal/filesystem"
	"file-tools-server/internal/models"
	"file-tools-server/internal/sandbox"
)

// FileToolService defines the sandboxed file operations exposed to tool
// callers. Read-only operations (list, read, search) validate the target
// kind; mutating operations additionally authorize against the sandbox
// boundary before any filesystem access.
type FileToolService interface {
	ListFiles(req models.ListFilesRequest) (*models.ListFilesResponse, *models.ErrorDetail)
	ReadFile(req models.ReadFileRequest) (*models.ReadFileResponse, *models.ErrorDetail)
	SearchInFile(req models.SearchInFileRequest) (*models.SearchInFileResponse, *models.ErrorDetail)
	WriteFile(req models.WriteFileRequest) (*models.WriteFileResponse, *models.ErrorDetail)
	DeleteFile(req models.DeleteFileRequest) (*models.DeleteFileResponse, *models.ErrorDetail)
	CreateDirectory(req models.CreateDirectoryRequest) (*models.CreateDirectoryResponse, *models.ErrorDetail)
	DeleteDirectory(req models.DeleteDirectoryRequest) (*models.DeleteDirectoryResponse, *models.ErrorDetail)
}

// DefaultFileToolService implements FileToolService over a filesystem
// adapter and a sandbox guard. Operations are synchronous and share no
// mutable state, so they may run concurrently without coordination.
type DefaultFileToolService struct {
	fsAdapter   filesystem.Adapter
	guard       *sandbox.Guard
	maxFileSize int64 // bytes; 0 disables the limit
	log         *logrus.Logger
}

// NewDefaultFileToolService creates a new DefaultFileToolService.
func NewDefaultFileToolService(
	fsAdapter filesystem.Adapter,
	guard *sandbox.Guard,
	cfg *config.Config,
	log *logrus.Logger,
) (*DefaultFileToolService, error) {
	if fsAdapter == nil {
		return nil, fmt.Errorf("filesystem adapter is required")
	}
	if guard == nil {
		return nil, fmt.Errorf("sandbox guard is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DefaultFileToolService{
		fsAdapter:   fsAdapter,
		guard:       guard,
		maxFileSize: int64(cfg.MaxFileSizeMB) * 1024 * 1024,
		log:         log,
	}, nil
}

var _ FileToolService = (*DefaultFileToolService)(nil)

// resolvePath resolves a caller-supplied path to an absolute, cleaned path.
// It performs no filesystem access.
func (s *DefaultFileToolService) resolvePath(path, operation string) (string, *models.ErrorDetail) {
	if path == "" {
		return "", errors.NewInvalidParamsError("A path is required.",
			map[string]interface{}{"operation": operation})
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.NewInvalidParamsError(
			fmt.Sprintf("Path %s could not be resolved: %v", path, err),
			map[string]interface{}{"path": path, "operation": operation})
	}
	return abs, nil
}

// authorize consults the sandbox guard for a mutation target. Violations are
// logged at warning level and returned as typed failures; the caller must
// not touch the filesystem afterwards.
func (s *DefaultFileToolService) authorize(path, operation string) *models.ErrorDetail {
	err := s.guard.Authorize(path)
	if err == nil {
		return nil
	}
	var violation *sandbox.ViolationError
	if stdErrors.As(err, &violation) {
		s.log.WithFields(logrus.Fields{
			"path":      violation.Path,
			"root":      violation.Root,
			"operation": operation,
		}).Warn("Rejected mutation outside sandbox root")
		return errors.NewSandboxViolationError(violation.Path, operation)
	}
	return errors.NewInternalError(fmt.Sprintf("Sandbox authorization failed: %v", err))
}

// mapOSError converts an underlying OS failure into an ErrorDetail without
// reinterpreting it; the original error text is preserved.
func (s *DefaultFileToolService) mapOSError(err error, path, operation string) *models.ErrorDetail {
	if stdErrors.Is(err, fs.ErrPermission) {
		return errors.NewPermissionDeniedError(path, operation)
	}
	return errors.NewFileSystemError(path, operation, err.Error())
}
