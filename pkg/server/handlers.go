package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/coursegrid/pkg/cache"
	apperrors "github.com/matzehuels/coursegrid/pkg/errors"
	"github.com/matzehuels/coursegrid/pkg/graph"
	"github.com/matzehuels/coursegrid/pkg/pipeline"
)

// Request is the body of the /v1 endpoints.
type Request struct {
	Name    string           `json:"name,omitempty"`
	CSV     string           `json:"csv"`
	Options pipeline.Options `json:"options"`
}

// LayoutResponse is the body returned by POST /v1/layout.
type LayoutResponse struct {
	GraphHash string       `json:"graph_hash"`
	Layout    graph.Layout `json:"layout"`
	Cached    bool         `json:"cached"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLayout handles POST /v1/layout.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	g, err := s.runner.Load(ctx, req.Name, []byte(req.CSV), req.Options)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	l, hit, err := s.runner.LayoutWithCacheInfo(ctx, g, req.Options)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}

	resp := LayoutResponse{Layout: l, Cached: hit}
	if data, err := graph.MarshalGraph(g); err == nil {
		resp.GraphHash = cache.Hash(data)
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleRender handles POST /v1/render/{format}.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, http.StatusNotFound, apperrors.ErrCodeUnsupported, err.Error())
		return
	}
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	req.Options.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), req.Name, []byte(req.CSV), req.Options)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Graph-Hash", result.GraphHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (Request, bool) {
	req := Request{Name: "request.csv", Options: s.options()}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, apperrors.ErrCodeInvalidInput,
				fmt.Sprintf("request body exceeds %d bytes", s.maxBody))
			return Request{}, false
		}
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "invalid request body: "+err.Error())
		return Request{}, false
	}
	if req.CSV == "" {
		writeError(w, http.StatusBadRequest, apperrors.ErrCodeInvalidInput, "csv is required")
		return Request{}, false
	}
	return req, true
}

func (s *Server) writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "error", err)
	}
	writeError(w, status, code, err.Error())
}

// statusFor maps error codes to HTTP statuses. Input that cannot be laid
// out is the client's problem; anything uncoded is ours.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidConfig, apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidNode, apperrors.ErrCodeDuplicateNode, apperrors.ErrCodeUnknownTarget,
		apperrors.ErrCodeDanglingReference, apperrors.ErrCodeCycleDetected,
		apperrors.ErrCodeSemesterOrder, apperrors.ErrCodeCellOutOfRange:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeUnsupported:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, code apperrors.Code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}
