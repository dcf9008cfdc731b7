package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/leapstack-labs/leapsolve/pkg/core"
	"github.com/leapstack-labs/leapsolve/pkg/units"
)

type solveRequest struct {
	Text string `json:"text"`
}

type expressionRequest struct {
	Expression string `json:"expression"`
}

type convertRequest struct {
	Value *float64 `json:"value"`
	From  string   `json:"from"`
	To    string   `json:"to"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Column  int    `json:"column,omitempty"`
}

type unitsResponse struct {
	Units []units.Unit `json:"units"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSolve always answers 200: failures are part of the result.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "bad-request", "text is required", 0)
		return
	}

	res := s.solver.SolveFromText(req.Text)
	if s.history != nil {
		if _, err := s.history.Record(r.Context(), req.Text, res); err != nil {
			s.logger.Warn("failed to record solve", slog.String("error", err.Error()))
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleExpression(w http.ResponseWriter, r *http.Request) {
	var req expressionRequest
	if !s.decode(w, r, &req) {
		return
	}

	res, err := s.solver.SolveExpression(req.Expression)
	if err != nil {
		writeSolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Value == nil || req.From == "" || req.To == "" {
		writeError(w, http.StatusBadRequest, "bad-request", "value, from and to are required", 0)
		return
	}

	res, err := s.solver.Convert(*req.Value, req.From, req.To)
	if err != nil {
		writeSolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	list := s.solver.Units().Units()
	if dim := r.URL.Query().Get("dimension"); dim != "" {
		filtered := list[:0]
		for _, u := range list {
			if string(u.Dimension) == dim {
				filtered = append(filtered, u)
			}
		}
		list = filtered
	}
	writeJSON(w, http.StatusOK, unitsResponse{Units: list})
}

// decode reads a size-limited JSON body into v. On failure it writes the
// response and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxInputBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	err := dec.Decode(v)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "too-large",
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), 0)
	case errors.Is(err, io.EOF):
		writeError(w, http.StatusBadRequest, "bad-request", "request body is empty", 0)
	default:
		writeError(w, http.StatusBadRequest, "bad-request", "invalid JSON: "+err.Error(), 0)
	}
	return false
}

func writeSolveError(w http.ResponseWriter, err error) {
	var e *core.Error
	if errors.As(err, &e) {
		writeError(w, http.StatusUnprocessableEntity, string(e.Kind), e.Message, e.Pos.Column)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal", err.Error(), 0)
}

func writeError(w http.ResponseWriter, status int, kind, msg string, column int) {
	writeJSON(w, status, errorResponse{Error: kind, Message: msg, Column: column})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
