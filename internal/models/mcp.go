package models

// MCPToolContent is one content block of a tool call result.
type MCPToolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// MCPToolResult is the result of a tool call. IsError marks tool-level
// failures that are still valid protocol responses.
type MCPToolResult struct {
	Content []MCPToolContent `json:"content"`
	IsError bool             `json:"isError"`
}

// ServerInfo identifies the server in the initialize handshake.
type ServerInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// ToolsCapabilities is currently empty; reserved for future capability flags.
type ToolsCapabilities struct{}

// Capabilities lists what the server supports.
type Capabilities struct {
	Tools ToolsCapabilities `json:"tools"`
}

// InitializeResponse is the payload of the "initialize" method.
type InitializeResponse struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
}

// Schema is a JSON schema fragment, kept loose for flexibility.
type Schema map[string]interface{}

// ToolAnnotations provides behavioral hints for a tool.
type ToolAnnotations struct {
	ReadOnlyHint    bool `json:"readOnlyHint"`
	DestructiveHint bool `json:"destructiveHint"`
}

// ToolDefinition describes one registered tool.
type ToolDefinition struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	ArgumentsSchema Schema          `json:"inputSchema"`
	Annotations     ToolAnnotations `json:"annotations"`
}

// ToolsListResponse is the payload of the "tools/list" method.
type ToolsListResponse struct {
	Tools []ToolDefinition `json:"tools"`
}
