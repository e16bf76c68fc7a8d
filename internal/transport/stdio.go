package transport

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"file-tools-server/internal/errors"
	"file-tools-server/internal/mcp"
	"file-tools-server/internal/models"
	"file-tools-server/internal/service"
)

// maxLineBytes bounds a single JSON-RPC line on stdin.
const maxLineBytes = 10 * 1024 * 1024

// StdioHandler serves newline-delimited JSON-RPC 2.0 over standard
// input/output. MCP methods (initialize, tools/list, tools/call) go through
// the processor; the file operations are also callable as direct methods.
type StdioHandler struct {
	service   service.FileToolService
	processor *mcp.Processor
	log       *logrus.Logger
}

// NewStdioHandler creates a new StdioHandler.
func NewStdioHandler(svc service.FileToolService, processor *mcp.Processor, log *logrus.Logger) *StdioHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &StdioHandler{
		service:   svc,
		processor: processor,
		log:       log,
	}
}

func (h *StdioHandler) writeResponse(writer io.Writer, response models.JSONRPCResponse) {
	responseBytes, err := json.Marshal(response)
	if err != nil {
		h.log.WithError(err).WithField("id", response.ID).Error("Failed to marshal JSON-RPC response")
		fallback := models.JSONRPCResponse{
			JSONRPC: "2.0",
			ID:      response.ID,
			Error:   errors.ToJSONRPCError(errors.NewInternalError("failed to marshal response")),
		}
		responseBytes, _ = json.Marshal(fallback)
	}
	if _, err := fmt.Fprintln(writer, string(responseBytes)); err != nil {
		h.log.WithError(err).Error("Failed to write JSON-RPC response")
	}
}

// Start processes JSON-RPC requests from input until EOF, writing one
// response line per request to output.
func (h *StdioHandler) Start(input io.Reader, output io.Writer) error {
	h.log.Info("Starting stdio JSON-RPC handler")
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(bytes.TrimSpace(lineBytes)) == 0 {
			continue
		}

		var req models.JSONRPCRequest
		if err := json.Unmarshal(lineBytes, &req); err != nil {
			h.writeResponse(output, models.JSONRPCResponse{
				JSONRPC: "2.0",
				Error:   errors.ToJSONRPCError(errors.NewParseError(fmt.Sprintf("invalid JSON received: %v", err))),
			})
			continue
		}

		resp := models.JSONRPCResponse{JSONRPC: "2.0", ID: req.ID}

		if req.JSONRPC != "2.0" {
			resp.Error = errors.ToJSONRPCError(errors.NewInvalidRequestError("invalid JSON-RPC version, must be \"2.0\""))
			h.writeResponse(output, resp)
			continue
		}
		if req.Method == "" {
			resp.Error = errors.ToJSONRPCError(errors.NewInvalidRequestError("method not specified"))
			h.writeResponse(output, resp)
			continue
		}

		result, rpcErr := h.dispatch(req)
		if rpcErr != nil {
			resp.Error = rpcErr
		} else {
			resp.Result = result
		}
		h.writeResponse(output, resp)
	}

	if err := scanner.Err(); err != nil {
		h.log.WithError(err).Error("Error reading from stdio")
		return err
	}
	h.log.Info("Stdio JSON-RPC handler finished")
	return nil
}

func (h *StdioHandler) dispatch(req models.JSONRPCRequest) (interface{}, *models.JSONRPCError) {
	switch req.Method {
	case "initialize", "tools/list", "tools/call":
		return h.processor.ProcessRequest(req)
	case "list_files":
		return callService(req.Params, req.Method, h.service.ListFiles)
	case "read_file":
		return callService(req.Params, req.Method, h.service.ReadFile)
	case "search_in_file":
		return callService(req.Params, req.Method, h.service.SearchInFile)
	case "write_file":
		return callService(req.Params, req.Method, h.service.WriteFile)
	case "delete_file":
		return callService(req.Params, req.Method, h.service.DeleteFile)
	case "create_directory":
		return callService(req.Params, req.Method, h.service.CreateDirectory)
	case "delete_directory":
		return callService(req.Params, req.Method, h.service.DeleteDirectory)
	default:
		return nil, errors.ToJSONRPCError(errors.NewMethodNotFoundError(req.Method))
	}
}

// callService decodes params and invokes one service operation, converting a
// typed failure into a JSON-RPC error annotated with the method name.
func callService[Req any, Resp any](params json.RawMessage, method string, call func(Req) (*Resp, *models.ErrorDetail)) (interface{}, *models.JSONRPCError) {
	var req Req
	if len(params) > 0 && string(params) != "null" {
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, errors.ToJSONRPCError(errors.NewInvalidParamsError(
				fmt.Sprintf("Invalid params for %s: %v", method, err), nil))
		}
	}
	resp, errDetail := call(req)
	if errDetail != nil {
		rpcErr := errors.ToJSONRPCError(errDetail)
		if rpcErr.Data != nil && rpcErr.Data.Operation == "" {
			rpcErr.Data.Operation = method
		}
		return nil, rpcErr
	}
	return resp, nil
}
