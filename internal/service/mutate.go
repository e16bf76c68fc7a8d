package service

import (
	stdErrors "errors"
	"io/fs"

	"file-tools-server/internal/models"
)

// WriteFile writes text content to a file, creating it when absent. Append
// mode appends; otherwise an existing file is silently overwritten. The
// sandbox guard runs before any filesystem access.
func (s *DefaultFileToolService) WriteFile(req models.WriteFileRequest) (*models.WriteFileResponse, *models.ErrorDetail) {
	filePath, errDetail := s.resolvePath(req.FilePath, "write_file")
	if errDetail != nil {
		return nil, errDetail
	}
	if errDetail := s.authorize(filePath, "write_file"); errDetail != nil {
		return nil, errDetail
	}

	bytesWritten, err := s.fsAdapter.WriteFile(filePath, []byte(req.Content), req.Append)
	if err != nil {
		return nil, s.mapOSError(err, filePath, "write_file")
	}
	return &models.WriteFileResponse{
		Success:      true,
		BytesWritten: bytesWritten,
	}, nil
}

// DeleteFile removes a regular file. A path that does not resolve to an
// existing regular file is a soft outcome (Deleted=false), not a failure.
func (s *DefaultFileToolService) DeleteFile(req models.DeleteFileRequest) (*models.DeleteFileResponse, *models.ErrorDetail) {
	filePath, errDetail := s.resolvePath(req.FilePath, "delete_file")
	if errDetail != nil {
		return nil, errDetail
	}
	if errDetail := s.authorize(filePath, "delete_file"); errDetail != nil {
		return nil, errDetail
	}

	stats, err := s.fsAdapter.Stat(filePath)
	if err != nil {
		if stdErrors.Is(err, fs.ErrNotExist) {
			s.log.WithField("path", filePath).Warn("Delete skipped: not an existing regular file")
			return &models.DeleteFileResponse{Deleted: false}, nil
		}
		return nil, s.mapOSError(err, filePath, "delete_file")
	}
	if !stats.IsRegular {
		s.log.WithField("path", filePath).Warn("Delete skipped: not an existing regular file")
		return &models.DeleteFileResponse{Deleted: false}, nil
	}

	if err := s.fsAdapter.Remove(filePath); err != nil {
		return nil, s.mapOSError(err, filePath, "delete_file")
	}
	return &models.DeleteFileResponse{Deleted: true}, nil
}

// CreateDirectory creates a directory including any missing parent segments.
// An already existing path, file or directory, is a soft outcome
// (Created=false) and the filesystem is left untouched.
func (s *DefaultFileToolService) CreateDirectory(req models.CreateDirectoryRequest) (*models.CreateDirectoryResponse, *models.ErrorDetail) {
	dirPath, errDetail := s.resolvePath(req.DirectoryPath, "create_directory")
	if errDetail != nil {
		return nil, errDetail
	}
	if errDetail := s.authorize(dirPath, "create_directory"); errDetail != nil {
		return nil, errDetail
	}

	exists, err := s.fsAdapter.Exists(dirPath)
	if err != nil {
		return nil, s.mapOSError(err, dirPath, "create_directory")
	}
	if exists {
		s.log.WithField("path", dirPath).Warn("Create skipped: path already exists")
		return &models.CreateDirectoryResponse{Created: false}, nil
	}

	if err := s.fsAdapter.MkdirAll(dirPath); err != nil {
		return nil, s.mapOSError(err, dirPath, "create_directory")
	}
	return &models.CreateDirectoryResponse{Created: true}, nil
}

// DeleteDirectory removes an empty directory. A path that is not an existing
// directory is a soft outcome (Deleted=false). A non-empty directory
// produces the underlying OS failure, which propagates unmodified and
// leaves the directory intact.
func (s *DefaultFileToolService) DeleteDirectory(req models.DeleteDirectoryRequest) (*models.DeleteDirectoryResponse, *models.ErrorDetail) {
	dirPath, errDetail := s.resolvePath(req.DirectoryPath, "delete_directory")
	if errDetail != nil {
		return nil, errDetail
	}
	if errDetail := s.authorize(dirPath, "delete_directory"); errDetail != nil {
		return nil, errDetail
	}

	stats, err := s.fsAdapter.Stat(dirPath)
	if err != nil {
		if stdErrors.Is(err, fs.ErrNotExist) {
			s.log.WithField("path", dirPath).Warn("Delete skipped: not an existing directory")
			return &models.DeleteDirectoryResponse{Deleted: false}, nil
		}
		return nil, s.mapOSError(err, dirPath, "delete_directory")
	}
	if !stats.IsDir {
		s.log.WithField("path", dirPath).Warn("Delete skipped: not an existing directory")
		return &models.DeleteDirectoryResponse{Deleted: false}, nil
	}

	if err := s.fsAdapter.Remove(dirPath); err != nil {
		return nil, s.mapOSError(err, dirPath, "delete_directory")
	}
	return &models.DeleteDirectoryResponse{Deleted: true}, nil
}
