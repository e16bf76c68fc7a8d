package models

// ReadFileRequest represents a request to read file content, optionally
// restricted to a 1-based inclusive line range.
type ReadFileRequest struct {
	// FilePath is the file to read.
	FilePath string `json:"file_path"`
	// StartLine is the optional 1-based first line to include. Nil means the
	// start of the file.
	StartLine *int `json:"start_line,omitempty"`
	// EndLine is the optional 1-based last line to include. Nil means the end
	// of the file.
	EndLine *int `json:"end_line,omitempty"`
}

// EffectiveRange reports the line range a partial read actually covered,
// after defaulting omitted bounds and clamping to the file length.
type EffectiveRange struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// ReadFileResponse represents the response from a read operation. Content
// keeps line terminators verbatim.
type ReadFileResponse struct {
	Content    string `json:"content"`
	TotalLines int    `json:"total_lines"`
	// EffectiveRange is present only when the caller restricted the range.
	EffectiveRange *EffectiveRange `json:"effective_range,omitempty"`
}
