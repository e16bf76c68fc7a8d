package mcp

import (
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"file-tools-server/internal/config"
	"file-tools-server/internal/errors"
	"file-tools-server/internal/filesystem"
	"file-tools-server/internal/models"
	"file-tools-server/internal/sandbox"
	"file-tools-server/internal/service"
)

func newTestProcessor(t *testing.T, root string) *Processor {
	t.Helper()
	guard, err := sandbox.NewGuard(sandbox.StaticSource{Root: root})
	if err != nil {
		t.Fatalf("NewGuard failed: %v", err)
	}
	cfg := config.Default()
	cfg.WorkingDirectory = root
	log := logrus.New()
	log.SetOutput(io.Discard)
	svc, err := service.NewDefaultFileToolService(filesystem.NewOsAdapter(), guard, cfg, log)
	if err != nil {
		t.Fatalf("NewDefaultFileToolService failed: %v", err)
	}
	return NewProcessor(svc)
}

func TestInitialize(t *testing.T) {
	p := newTestProcessor(t, t.TempDir())

	result, rpcErr := p.ProcessRequest(models.JSONRPCRequest{JSONRPC: "2.0", Method: "initialize"})
	if rpcErr != nil {
		t.Fatalf("initialize failed: %+v", rpcErr)
	}
	resp, ok := result.(models.InitializeResponse)
	if !ok {
		t.Fatalf("result type = %T, want InitializeResponse", result)
	}
	if resp.ProtocolVersion != ProtocolVersion {
		t.Errorf("ProtocolVersion = %q, want %q", resp.ProtocolVersion, ProtocolVersion)
	}
	if resp.ServerInfo.Name != ServerName {
		t.Errorf("ServerInfo.Name = %q, want %q", resp.ServerInfo.Name, ServerName)
	}
}

func TestToolsListIsCompleteAndOrdered(t *testing.T) {
	p := newTestProcessor(t, t.TempDir())

	result, rpcErr := p.ProcessRequest(models.JSONRPCRequest{JSONRPC: "2.0", Method: "tools/list"})
	if rpcErr != nil {
		t.Fatalf("tools/list failed: %+v", rpcErr)
	}
	resp, ok := result.(models.ToolsListResponse)
	if !ok {
		t.Fatalf("result type = %T, want ToolsListResponse", result)
	}

	want := []string{
		"list_files",
		"read_file",
		"search_in_file",
		"write_file",
		"delete_file",
		"create_directory",
		"delete_directory",
	}
	got := make([]string, 0, len(resp.Tools))
	for _, tool := range resp.Tools {
		got = append(got, tool.Name)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tool names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, p.ToolNames()); diff != "" {
		t.Errorf("ToolNames mismatch (-want +got):\n%s", diff)
	}

	for _, tool := range resp.Tools {
		if tool.Description == "" {
			t.Errorf("tool %s has no description", tool.Name)
		}
		if tool.ArgumentsSchema == nil {
			t.Errorf("tool %s has no arguments schema", tool.Name)
		}
	}
}

func callToolRequest(t *testing.T, p *Processor, name string, args interface{}) (*models.MCPToolResult, *models.JSONRPCError) {
	t.Helper()
	argBytes, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("marshaling args: %v", err)
	}
	params, err := json.Marshal(ToolCallParams{Name: name, Arguments: argBytes})
	if err != nil {
		t.Fatalf("marshaling params: %v", err)
	}
	result, rpcErr := p.ProcessRequest(models.JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  "tools/call",
		Params:  params,
	})
	if rpcErr != nil {
		return nil, rpcErr
	}
	toolResult, ok := result.(*models.MCPToolResult)
	if !ok {
		t.Fatalf("result type = %T, want *MCPToolResult", result)
	}
	return toolResult, nil
}

func TestToolCallWriteAndRead(t *testing.T) {
	root := t.TempDir()
	p := newTestProcessor(t, root)
	path := filepath.Join(root, "f.txt")

	result, rpcErr := callToolRequest(t, p, "write_file", map[string]interface{}{
		"file_path": path,
		"content":   "hello\n",
	})
	if rpcErr != nil {
		t.Fatalf("write_file failed: %+v", rpcErr)
	}
	if result.IsError {
		t.Fatalf("write_file result marked as error: %+v", result)
	}

	result, rpcErr = callToolRequest(t, p, "read_file", map[string]interface{}{"file_path": path})
	if rpcErr != nil {
		t.Fatalf("read_file failed: %+v", rpcErr)
	}
	if result.IsError || len(result.Content) != 1 {
		t.Fatalf("read_file result = %+v, want one text block", result)
	}

	var readResp models.ReadFileResponse
	if err := json.Unmarshal([]byte(result.Content[0].Text), &readResp); err != nil {
		t.Fatalf("decoding read_file payload: %v", err)
	}
	if readResp.Content != "hello\n" || readResp.TotalLines != 1 {
		t.Errorf("read_file payload = %+v, want content %q", readResp, "hello\n")
	}
}

func TestToolCallServiceErrorBecomesToolError(t *testing.T) {
	root := t.TempDir()
	p := newTestProcessor(t, root)

	result, rpcErr := callToolRequest(t, p, "read_file", map[string]interface{}{
		"file_path": filepath.Join(root, "missing.txt"),
	})
	if rpcErr != nil {
		t.Fatalf("tools/call failed at the protocol level: %+v", rpcErr)
	}
	if !result.IsError {
		t.Fatalf("result = %+v, want IsError", result)
	}
	if len(result.Content) != 1 || result.Content[0].Text == "" {
		t.Errorf("error result content = %+v, want one text block", result.Content)
	}
}

func TestToolCallUnknownTool(t *testing.T) {
	p := newTestProcessor(t, t.TempDir())

	result, rpcErr := callToolRequest(t, p, "format_disk", map[string]interface{}{})
	if rpcErr != nil {
		t.Fatalf("tools/call failed at the protocol level: %+v", rpcErr)
	}
	if !result.IsError {
		t.Fatalf("result = %+v, want IsError for unknown tool", result)
	}
}

func TestToolCallInvalidArguments(t *testing.T) {
	p := newTestProcessor(t, t.TempDir())

	params, _ := json.Marshal(ToolCallParams{
		Name:      "read_file",
		Arguments: json.RawMessage(`{"file_path": 42}`),
	})
	_, rpcErr := p.ProcessRequest(models.JSONRPCRequest{
		JSONRPC: "2.0",
		Method:  "tools/call",
		Params:  params,
	})
	if rpcErr == nil || rpcErr.Code != errors.CodeInvalidParams {
		t.Errorf("error = %+v, want invalid params", rpcErr)
	}
}

func TestMethodNotFound(t *testing.T) {
	p := newTestProcessor(t, t.TempDir())

	_, rpcErr := p.ProcessRequest(models.JSONRPCRequest{JSONRPC: "2.0", Method: "resources/list"})
	if rpcErr == nil || rpcErr.Code != errors.CodeMethodNotFound {
		t.Errorf("error = %+v, want method not found", rpcErr)
	}
}
