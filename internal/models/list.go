package models

// ListFilesRequest represents a request to list the immediate children of a
// directory.
type ListFilesRequest struct {
	// DirectoryPath is the directory to enumerate.
	DirectoryPath string `json:"directory_path"`
	// Filter is an optional glob pattern ('*' and '?') matched against entry
	// base names. Entries that do not match are silently skipped.
	Filter *string `json:"filter,omitempty"`
}

// ListFilesResponse represents the response from a list operation.
// Entry order is filesystem enumeration order; callers must not rely on it.
type ListFilesResponse struct {
	Entries       []FileEntry `json:"entries"`
	TotalCount    int         `json:"total_count"`
	DirectoryPath string      `json:"directory_path"`
}
