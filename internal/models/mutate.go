package models

// WriteFileRequest represents a request to write text content to a file,
// creating it when absent.
type WriteFileRequest struct {
	// FilePath is the file to write.
	FilePath string `json:"file_path"`
	// Content is written as-is, without added terminators.
	Content string `json:"content"`
	// Append opens the file in append mode instead of truncating.
	Append bool `json:"append,omitempty"`
}

// WriteFileResponse represents the response from a write operation.
type WriteFileResponse struct {
	Success      bool `json:"success"`
	BytesWritten int  `json:"bytes_written"`
}

// DeleteFileRequest represents a request to remove a regular file.
type DeleteFileRequest struct {
	FilePath string `json:"file_path"`
}

// DeleteFileResponse reports the soft outcome of a file deletion. Deleted is
// false, not an error, when the path was not an existing regular file.
type DeleteFileResponse struct {
	Deleted bool `json:"deleted"`
}

// CreateDirectoryRequest represents a request to create a directory,
// including any missing parent segments.
type CreateDirectoryRequest struct {
	DirectoryPath string `json:"directory_path"`
}

// CreateDirectoryResponse reports the soft outcome of directory creation.
// Created is false, not an error, when the path already exists.
type CreateDirectoryResponse struct {
	Created bool `json:"created"`
}

// DeleteDirectoryRequest represents a request to remove an empty directory.
type DeleteDirectoryRequest struct {
	DirectoryPath string `json:"directory_path"`
}

// DeleteDirectoryResponse reports the soft outcome of directory removal.
// Deleted is false, not an error, when the path was not an existing
// directory. Removing a non-empty directory is a hard failure.
type DeleteDirectoryResponse struct {
	Deleted bool `json:"deleted"`
}
