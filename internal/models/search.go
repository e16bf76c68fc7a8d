package models

// SearchInFileRequest represents a request to scan a file for lines
// containing a literal substring.
type SearchInFileRequest struct {
	// FilePath is the file to scan.
	FilePath string `json:"file_path"`
	// SearchString is the literal needle. An empty needle matches every line.
	SearchString string `json:"search_string"`
	// CaseSensitive controls whether comparison is case sensitive.
	// Nil defaults to true.
	CaseSensitive *bool `json:"case_sensitive,omitempty"`
}

// SearchInFileResponse represents the response from a search operation.
// Matches are emitted in line order; each matching line contributes exactly
// one entry regardless of how many times the needle occurs within it.
type SearchInFileResponse struct {
	Matches    []MatchedLine `json:"matches"`
	TotalCount int           `json:"total_count"`
}
