package models

import "time"

// FileEntry describes one directory entry or inspected file.
//
// Size and LastModified are populated together and only for regular files;
// for directories and special file types both stay nil. Pointer fields keep
// "absent" distinguishable from a zero value on the wire.
type FileEntry struct {
	// Name is the base name of the entry, without path separators.
	Name string `json:"name"`
	// Path is the fully resolved path of the entry.
	Path string `json:"path"`
	// IsFile reports whether the entry is a regular file.
	IsFile bool `json:"is_file"`
	// IsDirectory reports whether the entry is a directory.
	// For special file types (sockets, devices) both booleans are false.
	IsDirectory bool `json:"is_directory"`
	// Size is the byte length, present only for regular files.
	Size *int64 `json:"size,omitempty"`
	// LastModified is the modification timestamp, present only for regular files.
	LastModified *time.Time `json:"last_modified,omitempty"`
}

// MatchedLine is one line of a file satisfying a search predicate.
type MatchedLine struct {
	// Name is the base name of the containing file.
	Name string `json:"name"`
	// Path is the fully resolved path of the containing file.
	Path string `json:"path"`
	// LineNumber is the 1-based position of the line within the file.
	LineNumber int `json:"line_number"`
	// Content is the raw line including its terminator, in original case.
	Content string `json:"content"`
}
