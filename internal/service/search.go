package service

import (
	"bufio"
	stdErrors "errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"file-tools-server/internal/errors"
	"file-tools-server/internal/filesystem"
	"file-tools-server/internal/models"
)

// SearchInFile scans a file line by line for a literal substring. The file
// is streamed rather than loaded whole, which matters for large files. When
// the search is case insensitive both line and needle are folded for the
// comparison only; the emitted content is always the original line text,
// terminator included.
//
// An empty needle matches every line. A line contributes at most one match
// no matter how many times the needle occurs within it. Content that is not
// valid UTF-8 fails with a decode error, as in ReadFile.
func (s *DefaultFileToolService) SearchInFile(req models.SearchInFileRequest) (*models.SearchInFileResponse, *models.ErrorDetail) {
	filePath, errDetail := s.resolvePath(req.FilePath, "search_in_file")
	if errDetail != nil {
		return nil, errDetail
	}

	caseSensitive := true
	if req.CaseSensitive != nil {
		caseSensitive = *req.CaseSensitive
	}

	stats, err := s.fsAdapter.Stat(filePath)
	if err != nil {
		if stdErrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotAFileError(filePath, "search_in_file")
		}
		return nil, s.mapOSError(err, filePath, "search_in_file")
	}
	if !stats.IsRegular {
		return nil, errors.NewNotAFileError(filePath, "search_in_file")
	}

	file, err := s.fsAdapter.Open(filePath)
	if err != nil {
		return nil, s.mapOSError(err, filePath, "search_in_file")
	}
	defer file.Close()

	needle := req.SearchString
	if !caseSensitive {
		needle = strings.ToLower(needle)
	}

	baseName := filepath.Base(filePath)
	matches := []models.MatchedLine{}
	reader := bufio.NewReader(file)
	lineNumber := 0

	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			lineNumber++
			if !filesystem.IsValidUTF8([]byte(line)) {
				return nil, errors.NewDecodeError(filePath, "search_in_file", "content is not valid UTF-8")
			}
			probe := line
			if !caseSensitive {
				probe = strings.ToLower(probe)
			}
			if strings.Contains(probe, needle) {
				s.log.WithFields(logrus.Fields{
					"path": filePath,
					"line": lineNumber,
				}).Info("Search match found")
				matches = append(matches, models.MatchedLine{
					Name:       baseName,
					Path:       filePath,
					LineNumber: lineNumber,
					Content:    line,
				})
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return nil, s.mapOSError(readErr, filePath, "search_in_file")
		}
	}

	return &models.SearchInFileResponse{
		Matches:    matches,
		TotalCount: len(matches),
	}, nil
}
