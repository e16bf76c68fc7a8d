package filesystem

import (
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/spf13/afero"
)

// FileStats holds basic statistics about a filesystem entry.
type FileStats struct {
	Size      int64
	IsDir     bool
	IsRegular bool
	ModTime   time.Time
	Mode      os.FileMode
}

// DirEntryInfo holds information about one directory entry.
type DirEntryInfo struct {
	Name      string
	IsDir     bool
	IsRegular bool
	ModTime   time.Time
	Size      int64
}

// Adapter defines the filesystem port used by the service layer. Backing it
// with afero lets tests substitute an in-memory filesystem.
type Adapter interface {
	Stat(path string) (*FileStats, error)
	Exists(path string) (bool, error)
	ReadFileBytes(path string) ([]byte, error)
	// Open returns a reader over the file for streaming access. The caller
	// must close it on every exit path.
	Open(path string) (io.ReadCloser, error)
	// WriteFile writes content to path, creating the file when absent.
	// appendMode appends instead of truncating. Returns bytes written.
	WriteFile(path string, content []byte, appendMode bool) (int, error)
	// Remove removes a file or an empty directory. Removing a non-empty
	// directory fails with the underlying OS error.
	Remove(path string) error
	MkdirAll(path string) error
	ListDir(path string) ([]DirEntryInfo, error)
}

// AferoAdapter implements Adapter over an afero.Fs backend.
type AferoAdapter struct {
	fs afero.Fs
}

// NewAdapter creates an adapter over the given backend.
func NewAdapter(fs afero.Fs) *AferoAdapter {
	return &AferoAdapter{fs: fs}
}

// NewOsAdapter creates an adapter over the real operating system filesystem.
func NewOsAdapter() *AferoAdapter {
	return NewAdapter(afero.NewOsFs())
}

var _ Adapter = (*AferoAdapter)(nil)

// Stat retrieves statistics for the given path.
func (a *AferoAdapter) Stat(path string) (*FileStats, error) {
	info, err := a.fs.Stat(path)
	if err != nil {
		return nil, err
	}
	return &FileStats{
		Size:      info.Size(),
		IsDir:     info.IsDir(),
		IsRegular: info.Mode().IsRegular(),
		ModTime:   info.ModTime(),
		Mode:      info.Mode(),
	}, nil
}

// Exists checks whether the path exists at all.
func (a *AferoAdapter) Exists(path string) (bool, error) {
	_, err := a.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("checking existence of %s: %w", path, err)
}

// ReadFileBytes reads the entire file into memory.
func (a *AferoAdapter) ReadFileBytes(path string) ([]byte, error) {
	return afero.ReadFile(a.fs, path)
}

// Open opens the file for streaming reads.
func (a *AferoAdapter) Open(path string) (io.ReadCloser, error) {
	return a.fs.Open(path)
}

// WriteFile writes content to path in write or append mode.
func (a *AferoAdapter) WriteFile(path string, content []byte, appendMode bool) (int, error) {
	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := a.fs.OpenFile(path, flags, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := f.Write(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return n, err
}

// Remove removes a file or an empty directory.
func (a *AferoAdapter) Remove(path string) error {
	return a.fs.Remove(path)
}

// MkdirAll creates a directory along with any missing parents.
func (a *AferoAdapter) MkdirAll(path string) error {
	return a.fs.MkdirAll(path, 0o755)
}

// ListDir enumerates the immediate children of a directory. A failure on any
// entry aborts the whole listing; partial results are never returned.
func (a *AferoAdapter) ListDir(path string) ([]DirEntryInfo, error) {
	infos, err := afero.ReadDir(a.fs, path)
	if err != nil {
		return nil, err
	}
	entries := make([]DirEntryInfo, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, DirEntryInfo{
			Name:      info.Name(),
			IsDir:     info.IsDir(),
			IsRegular: info.Mode().IsRegular(),
			ModTime:   info.ModTime(),
			Size:      info.Size(),
		})
	}
	return entries, nil
}

// IsValidUTF8 checks whether content is valid UTF-8 text.
func IsValidUTF8(content []byte) bool {
	return utf8.Valid(content)
}

// SplitLinesKeepEnds splits content after every '\n', retaining the
// terminator on each line. A final segment without a terminator is kept as
// the last line. Empty content yields no lines.
func SplitLinesKeepEnds(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	var lines []string
	start := 0
	for i, b := range content {
		if b == '\n' {
			lines = append(lines, string(content[start:i+1]))
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, string(content[start:]))
	}
	return lines
}
