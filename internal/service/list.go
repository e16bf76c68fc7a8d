package service

import (
	"io/fs"
	"path/filepath"

	stdErrors "errors"

	"file-tools-server/internal/errors"
	"file-tools-server/internal/models"
)

// ListFiles enumerates the immediate children of a directory, optionally
// filtered by a glob pattern on base names. The result is fully materialized
// before return; a failure mid-enumeration aborts the whole call.
func (s *DefaultFileToolService) ListFiles(req models.ListFilesRequest) (*models.ListFilesResponse, *models.ErrorDetail) {
	dirPath, errDetail := s.resolvePath(req.DirectoryPath, "list_files")
	if errDetail != nil {
		return nil, errDetail
	}

	if req.Filter != nil {
		if _, err := filepath.Match(*req.Filter, "probe"); err != nil {
			return nil, errors.NewInvalidParamsError(
				"Filter is not a valid glob pattern.",
				map[string]interface{}{"filter": *req.Filter})
		}
	}

	stats, err := s.fsAdapter.Stat(dirPath)
	if err != nil {
		if stdErrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotADirectoryError(dirPath, "list_files")
		}
		return nil, s.mapOSError(err, dirPath, "list_files")
	}
	if !stats.IsDir {
		return nil, errors.NewNotADirectoryError(dirPath, "list_files")
	}

	children, err := s.fsAdapter.ListDir(dirPath)
	if err != nil {
		return nil, s.mapOSError(err, dirPath, "list_files")
	}

	entries := make([]models.FileEntry, 0, len(children))
	for _, child := range children {
		if req.Filter != nil {
			// Pattern validity was checked above; Match cannot fail here.
			matched, _ := filepath.Match(*req.Filter, child.Name)
			if !matched {
				continue
			}
		}
		entry := models.FileEntry{
			Name:        child.Name,
			Path:        filepath.Join(dirPath, child.Name),
			IsFile:      child.IsRegular,
			IsDirectory: child.IsDir,
		}
		if child.IsRegular {
			size := child.Size
			modTime := child.ModTime
			entry.Size = &size
			entry.LastModified = &modTime
		}
		entries = append(entries, entry)
	}

	return &models.ListFilesResponse{
		Entries:       entries,
		TotalCount:    len(entries),
		DirectoryPath: dirPath,
	}, nil
}
