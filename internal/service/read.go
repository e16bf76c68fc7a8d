package service

import (
	stdErrors "errors"
	"io/fs"
	"strings"

	"file-tools-server/internal/errors"
	"file-tools-server/internal/filesystem"
	"file-tools-server/internal/models"
)

// ReadFile returns file content, optionally restricted to a 1-based
// inclusive line range. Line terminators are preserved verbatim, so a full
// read round-trips the file byte for byte.
//
// A start line beyond the end of the file yields an empty result, not a
// failure; an end line beyond the file is clamped to the last line.
func (s *DefaultFileToolService) ReadFile(req models.ReadFileRequest) (*models.ReadFileResponse, *models.ErrorDetail) {
	filePath, errDetail := s.resolvePath(req.FilePath, "read_file")
	if errDetail != nil {
		return nil, errDetail
	}

	if (req.StartLine != nil && *req.StartLine < 1) || (req.EndLine != nil && *req.EndLine < 1) {
		return nil, errors.NewInvalidParamsError(
			"Line numbers must be 1 or greater if specified.",
			map[string]interface{}{"start_line": req.StartLine, "end_line": req.EndLine})
	}

	stats, err := s.fsAdapter.Stat(filePath)
	if err != nil {
		if stdErrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotAFileError(filePath, "read_file")
		}
		return nil, s.mapOSError(err, filePath, "read_file")
	}
	if !stats.IsRegular {
		return nil, errors.NewNotAFileError(filePath, "read_file")
	}
	if s.maxFileSize > 0 && stats.Size > s.maxFileSize {
		return nil, errors.NewFileTooLargeError(filePath, "read_file", stats.Size, int(s.maxFileSize/(1024*1024)))
	}

	content, err := s.fsAdapter.ReadFileBytes(filePath)
	if err != nil {
		return nil, s.mapOSError(err, filePath, "read_file")
	}
	if !filesystem.IsValidUTF8(content) {
		return nil, errors.NewDecodeError(filePath, "read_file", "content is not valid UTF-8")
	}

	lines := filesystem.SplitLinesKeepEnds(content)
	totalLines := len(lines)

	if req.StartLine == nil && req.EndLine == nil {
		return &models.ReadFileResponse{
			Content:    string(content),
			TotalLines: totalLines,
		}, nil
	}

	startLine := 1
	if req.StartLine != nil {
		startLine = *req.StartLine
	}
	endLine := totalLines
	if req.EndLine != nil {
		endLine = *req.EndLine
	}
	if endLine > totalLines {
		endLine = totalLines
	}

	var builder strings.Builder
	if startLine <= endLine && startLine <= totalLines {
		for _, line := range lines[startLine-1 : endLine] {
			builder.WriteString(line)
		}
	}

	return &models.ReadFileResponse{
		Content:    builder.String(),
		TotalLines: totalLines,
		EffectiveRange: &models.EffectiveRange{
			StartLine: startLine,
			EndLine:   endLine,
		},
	}, nil
}
