// Package server exposes the placement pipeline over HTTP.
//
// Endpoints:
//
//	POST   /v1/place      — run the pipeline on an uploaded design
//	GET    /v1/runs       — list persisted runs, newest first
//	GET    /v1/runs/{id}  — fetch one run
//	DELETE /v1/runs/{id}  — remove one run
//	GET    /healthz       — liveness probe
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/askeland/pinplace/pkg/errors"
	"github.com/askeland/pinplace/pkg/pipeline"
	"github.com/askeland/pinplace/pkg/runstore"
)

// Server wires the pipeline runner and the run store behind HTTP handlers.
type Server struct {
	runner *pipeline.Runner
	store  runstore.Store
	logger *log.Logger
}

// New creates a server. A nil store disables run persistence endpoints'
// storage side effects by falling back to an in-memory store.
func New(runner *pipeline.Runner, store runstore.Store, logger *log.Logger) *Server {
	if store == nil {
		store = runstore.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: store, logger: logger}
}

// Router builds the HTTP handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/place", s.handlePlace)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Delete("/runs/{id}", s.handleDeleteRun)
	})

	return r
}

// placeRequest is the POST /v1/place body. Design carries the raw design
// document; Format selects the decoder.
type placeRequest struct {
	Design  json.RawMessage `json:"design,omitempty"`
	TOML    string          `json:"toml,omitempty"`
	Workers int             `json:"workers,omitempty"`
	Refresh bool            `json:"refresh,omitempty"`
}

// placeResponse wraps the created run.
type placeResponse struct {
	RunID  string        `json:"run_id"`
	Run    *runstore.Run `json:"run"`
	Cached bool          `json:"cached"`
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest,
			errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	opts := pipeline.Options{
		Workers: req.Workers,
		Refresh: req.Refresh,
		Formats: []string{pipeline.FormatJSON},
	}
	switch {
	case req.TOML != "":
		opts.DesignData = []byte(req.TOML)
		opts.DesignFormat = "toml"
	case len(req.Design) > 0:
		opts.DesignData = req.Design
		opts.DesignFormat = "json"
	default:
		s.writeError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeInvalidInput, "request carries no design"))
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	run := runstore.New(result.Design.Hash, result.Report)
	if err := s.store.Put(r.Context(), run); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("placed design over http",
		"run", run.ID,
		"design", result.Design.Name,
		"placed", result.Report.Stats.Placed,
		"cached", result.CacheInfo.PlaceHit)

	s.writeJSON(w, http.StatusCreated, placeResponse{
		RunID:  run.ID,
		Run:    run,
		Cached: result.CacheInfo.PlaceHit,
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			s.writeError(w, http.StatusBadRequest,
				errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", raw))
			return
		}
		limit = parsed
	}

	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if runs == nil {
		runs = []*runstore.Run{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateRunID(id); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	run, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if run == nil {
		s.writeError(w, http.StatusNotFound,
			errors.New(errors.ErrCodeRunNotFound, "run %s not found", id))
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateRunID(id); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Error("request failed", "status", status, "err", err)
	s.writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}

// statusFor maps structured error codes onto HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDesign,
		errors.ErrCodeInvalidSection, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidEdge, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeRunNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
