package mcp

import (
	"encoding/json"
	"fmt"

	"file-tools-server/internal/errors"
	"file-tools-server/internal/models"
	"file-tools-server/internal/service"
)

// ProtocolVersion is the MCP protocol revision this server speaks.
const ProtocolVersion = "2024-11-05"

// ServerName and ServerVersion identify the server in the initialize
// handshake.
const (
	ServerName    = "file-tools-server"
	ServerVersion = "1.0.0"
)

// ToolCallParams represents the parameters of a tools/call request.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type toolHandler func(args json.RawMessage) (*models.MCPToolResult, *models.JSONRPCError)

type registeredTool struct {
	definition models.ToolDefinition
	handle     toolHandler
}

// Processor dispatches MCP JSON-RPC methods to the file tool service. The
// tool registry is a fixed name-to-handler mapping built once at
// construction; tools are never discovered at runtime.
type Processor struct {
	service service.FileToolService
	tools   map[string]registeredTool
	order   []string
}

// NewProcessor creates a Processor with the complete static tool registry.
func NewProcessor(svc service.FileToolService) *Processor {
	p := &Processor{
		service: svc,
		tools:   make(map[string]registeredTool),
	}

	p.register(models.ToolDefinition{
		Name:        "list_files",
		Description: "Lists files and directories in the specified directory path. An optional glob filter ('*' and '?') is matched against entry base names.",
		ArgumentsSchema: objectSchema(map[string]interface{}{
			"directory_path": stringProp("The path to the directory to list files from."),
			"filter":         stringProp("A glob pattern to match against file names. An asterisk matches any string."),
		}, "directory_path"),
		Annotations: models.ToolAnnotations{ReadOnlyHint: true},
	}, func(args json.RawMessage) (*models.MCPToolResult, *models.JSONRPCError) {
		return callTool(args, "list_files", p.service.ListFiles)
	})

	p.register(models.ToolDefinition{
		Name:        "read_file",
		Description: "Reads the content of a file, optionally restricted to a 1-based inclusive line range.",
		ArgumentsSchema: objectSchema(map[string]interface{}{
			"file_path":  stringProp("The path to the file to read content from."),
			"start_line": intProp("The line number to start reading from (1-based). Omit to start at the beginning."),
			"end_line":   intProp("The line number to stop reading at (1-based, inclusive). Omit to read to the end."),
		}, "file_path"),
		Annotations: models.ToolAnnotations{ReadOnlyHint: true},
	}, func(args json.RawMessage) (*models.MCPToolResult, *models.JSONRPCError) {
		return callTool(args, "read_file", p.service.ReadFile)
	})

	p.register(models.ToolDefinition{
		Name:        "search_in_file",
		Description: "Searches for a literal string in a file and returns matching lines with 1-based line numbers. An empty search string matches every line.",
		ArgumentsSchema: objectSchema(map[string]interface{}{
			"file_path":      stringProp("The path to the file to search in."),
			"search_string":  stringProp("The string to search for in the file."),
			"case_sensitive": boolProp("Whether the search is case sensitive. Defaults to true."),
		}, "file_path", "search_string"),
		Annotations: models.ToolAnnotations{ReadOnlyHint: true},
	}, func(args json.RawMessage) (*models.MCPToolResult, *models.JSONRPCError) {
		return callTool(args, "search_in_file", p.service.SearchInFile)
	})

	p.register(models.ToolDefinition{
		Name:        "write_file",
		Description: "Writes content to a file, creating it if absent. Overwrites unless append is true. Subject to the sandbox boundary.",
		ArgumentsSchema: objectSchema(map[string]interface{}{
			"file_path": stringProp("The path to the file to write to."),
			"content":   stringProp("The content to write to the file."),
			"append":    boolProp("Whether to append to the file instead of overwriting it."),
		}, "file_path", "content"),
		Annotations: models.ToolAnnotations{DestructiveHint: true},
	}, func(args json.RawMessage) (*models.MCPToolResult, *models.JSONRPCError) {
		return callTool(args, "write_file", p.service.WriteFile)
	})

	p.register(models.ToolDefinition{
		Name:        "delete_file",
		Description: "Deletes a regular file. Returns deleted=false if the path is not an existing regular file. Subject to the sandbox boundary.",
		ArgumentsSchema: objectSchema(map[string]interface{}{
			"file_path": stringProp("The path to the file to delete."),
		}, "file_path"),
		Annotations: models.ToolAnnotations{DestructiveHint: true},
	}, func(args json.RawMessage) (*models.MCPToolResult, *models.JSONRPCError) {
		return callTool(args, "delete_file", p.service.DeleteFile)
	})

	p.register(models.ToolDefinition{
		Name:        "create_directory",
		Description: "Creates a directory, including missing parents. Returns created=false if the path already exists. Subject to the sandbox boundary.",
		ArgumentsSchema: objectSchema(map[string]interface{}{
			"directory_path": stringProp("The path to the directory to create."),
		}, "directory_path"),
		Annotations: models.ToolAnnotations{DestructiveHint: true},
	}, func(args json.RawMessage) (*models.MCPToolResult, *models.JSONRPCError) {
		return callTool(args, "create_directory", p.service.CreateDirectory)
	})

	p.register(models.ToolDefinition{
		Name:        "delete_directory",
		Description: "Deletes an empty directory. Returns deleted=false if the path is not an existing directory; deleting a non-empty directory fails. Subject to the sandbox boundary.",
		ArgumentsSchema: objectSchema(map[string]interface{}{
			"directory_path": stringProp("The path to the directory to delete."),
		}, "directory_path"),
		Annotations: models.ToolAnnotations{DestructiveHint: true},
	}, func(args json.RawMessage) (*models.MCPToolResult, *models.JSONRPCError) {
		return callTool(args, "delete_directory", p.service.DeleteDirectory)
	})

	return p
}

func (p *Processor) register(def models.ToolDefinition, handle toolHandler) {
	p.tools[def.Name] = registeredTool{definition: def, handle: handle}
	p.order = append(p.order, def.Name)
}

// ProcessRequest handles one JSON-RPC request and returns the result payload
// or a JSON-RPC error.
func (p *Processor) ProcessRequest(req models.JSONRPCRequest) (interface{}, *models.JSONRPCError) {
	switch req.Method {
	case "initialize":
		return models.InitializeResponse{
			ProtocolVersion: ProtocolVersion,
			Capabilities:    models.Capabilities{},
			ServerInfo: models.ServerInfo{
				Name:        ServerName,
				Version:     ServerVersion,
				Description: "Sandboxed file-system toolset for LLM tool callers",
			},
		}, nil
	case "tools/list":
		defs := make([]models.ToolDefinition, 0, len(p.order))
		for _, name := range p.order {
			defs = append(defs, p.tools[name].definition)
		}
		return models.ToolsListResponse{Tools: defs}, nil
	case "tools/call":
		var params ToolCallParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, &models.JSONRPCError{
				Code:    errors.CodeInvalidParams,
				Message: "Invalid parameters for tools/call: " + err.Error(),
			}
		}
		tool, ok := p.tools[params.Name]
		if !ok {
			return &models.MCPToolResult{
				Content: []models.MCPToolContent{{Type: "text", Text: fmt.Sprintf("Error: Unknown tool '%s'.", params.Name)}},
				IsError: true,
			}, nil
		}
		return tool.handle(params.Arguments)
	default:
		return nil, &models.JSONRPCError{
			Code:    errors.CodeMethodNotFound,
			Message: "Method not found: " + req.Method,
		}
	}
}

// ToolNames returns the registered tool names in registration order.
func (p *Processor) ToolNames() []string {
	names := make([]string, len(p.order))
	copy(names, p.order)
	return names
}

// callTool decodes tool arguments, invokes the service operation, and wraps
// the response as a JSON text content block.
func callTool[Req any, Resp any](args json.RawMessage, toolName string, call func(Req) (*Resp, *models.ErrorDetail)) (*models.MCPToolResult, *models.JSONRPCError) {
	var req Req
	if len(args) > 0 {
		if err := json.Unmarshal(args, &req); err != nil {
			return nil, &models.JSONRPCError{
				Code:    errors.CodeInvalidParams,
				Message: fmt.Sprintf("Invalid parameters for %s: %v", toolName, err),
			}
		}
	}

	resp, errDetail := call(req)
	if errDetail != nil {
		return &models.MCPToolResult{
			Content: []models.MCPToolContent{{Type: "text", Text: formatToolError(errDetail)}},
			IsError: true,
		}, nil
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		return nil, errors.ToJSONRPCError(errors.NewInternalError(fmt.Sprintf("failed to encode %s result: %v", toolName, err)))
	}
	return &models.MCPToolResult{
		Content: []models.MCPToolContent{{Type: "text", Text: string(payload)}},
	}, nil
}

// formatToolError renders a service failure for the tool caller.
func formatToolError(errDetail *models.ErrorDetail) string {
	if errDetail == nil {
		return "Error: an unexpected error occurred, but no details were provided."
	}
	return fmt.Sprintf("Error: %s (Code: %d)", errDetail.Message, errDetail.Code)
}

func objectSchema(properties map[string]interface{}, required ...string) models.Schema {
	schema := models.Schema{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func intProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

func boolProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": description}
}
