package transport

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"file-tools-server/internal/errors"
	"file-tools-server/internal/models"
	"file-tools-server/internal/service"
)

const (
	defaultReadTimeout      = 60 * time.Second
	defaultWriteTimeout     = 60 * time.Second
	defaultMaxRequestSizeMB = 50
)

// HTTPHandler exposes each file operation as a POST endpoint.
type HTTPHandler struct {
	service      service.FileToolService
	log          *logrus.Logger
	readTimeout  time.Duration
	writeTimeout time.Duration
	maxReqSize   int64
	// Server holds the http.Server instance so the caller can shut it down
	// gracefully.
	Server *http.Server
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(svc service.FileToolService, log *logrus.Logger) *HTTPHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &HTTPHandler{
		service:      svc,
		log:          log,
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
		maxReqSize:   int64(defaultMaxRequestSizeMB) * 1024 * 1024,
		Server:       &http.Server{},
	}
}

// RegisterRoutes sets up one POST route per operation plus a health check.
func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/list_files", handlePost(h, h.service.ListFiles))
	mux.HandleFunc("/read_file", handlePost(h, h.service.ReadFile))
	mux.HandleFunc("/search_in_file", handlePost(h, h.service.SearchInFile))
	mux.HandleFunc("/write_file", handlePost(h, h.service.WriteFile))
	mux.HandleFunc("/delete_file", handlePost(h, h.service.DeleteFile))
	mux.HandleFunc("/create_directory", handlePost(h, h.service.CreateDirectory))
	mux.HandleFunc("/delete_directory", handlePost(h, h.service.DeleteDirectory))
	mux.HandleFunc("/health", h.handleHealthCheck)
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.log.WithError(err).Error("Failed to encode JSON response")
		}
	}
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, statusCode int, errDetail *models.ErrorDetail) {
	if errDetail == nil {
		errDetail = errors.NewInternalError("an unexpected error occurred and error details were lost")
		statusCode = http.StatusInternalServerError
	}
	h.writeJSON(w, statusCode, errors.ToErrorResponse(errDetail))
}

func (h *HTTPHandler) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePost wraps one service operation in the shared POST plumbing:
// method and content-type checks, size-capped strict JSON decoding, and
// error-to-status mapping.
func handlePost[Req any, Resp any](h *HTTPHandler, call func(Req) (*Resp, *models.ErrorDetail)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			h.writeError(w, http.StatusMethodNotAllowed,
				errors.NewInvalidRequestError(fmt.Sprintf("method %s not allowed, use POST", r.Method)))
			return
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			h.writeError(w, http.StatusUnsupportedMediaType,
				errors.NewInvalidRequestError("Content-Type must be application/json"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, h.maxReqSize)
		defer r.Body.Close()

		var req Req
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			h.writeDecodeError(w, err)
			return
		}

		resp, errDetail := call(req)
		if errDetail != nil {
			h.writeError(w, errors.MapErrorToHTTPStatus(errDetail), errDetail)
			return
		}
		h.writeJSON(w, http.StatusOK, resp)
	}
}

func (h *HTTPHandler) writeDecodeError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stdErrors.As(err, &maxBytesErr):
		h.writeError(w, http.StatusRequestEntityTooLarge,
			errors.NewInvalidRequestError(fmt.Sprintf("request body exceeds maximum size of %dMB", defaultMaxRequestSizeMB)))
	case stdErrors.As(err, &syntaxErr):
		h.writeError(w, http.StatusBadRequest,
			errors.NewParseError(fmt.Sprintf("invalid JSON syntax at offset %d: %v", syntaxErr.Offset, syntaxErr)))
	case stdErrors.As(err, &typeErr):
		h.writeError(w, http.StatusBadRequest,
			errors.NewParseError(fmt.Sprintf("invalid JSON type for field %q at offset %d", typeErr.Field, typeErr.Offset)))
	default:
		h.writeError(w, http.StatusBadRequest,
			errors.NewParseError(fmt.Sprintf("failed to decode request body: %v", err)))
	}
}

// StartServer configures and starts the HTTP server. It blocks until the
// server stops; http.ErrServerClosed is treated as a clean shutdown.
func (h *HTTPHandler) StartServer(port int, readTimeoutSec, writeTimeoutSec int) error {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	readTimeout := h.readTimeout
	if readTimeoutSec > 0 {
		readTimeout = time.Duration(readTimeoutSec) * time.Second
	}
	writeTimeout := h.writeTimeout
	if writeTimeoutSec > 0 {
		writeTimeout = time.Duration(writeTimeoutSec) * time.Second
	}

	h.Server.Addr = fmt.Sprintf(":%d", port)
	h.Server.Handler = mux
	h.Server.ReadTimeout = readTimeout
	h.Server.WriteTimeout = writeTimeout

	h.log.WithFields(logrus.Fields{
		"port":          port,
		"read_timeout":  readTimeout,
		"write_timeout": writeTimeout,
	}).Info("HTTP server starting")

	err := h.Server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		h.log.WithError(err).Error("HTTP server stopped with error")
		return err
	}
	h.log.Info("HTTP server shut down")
	return nil
}
