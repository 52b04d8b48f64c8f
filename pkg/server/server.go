// Package server exposes the coursegrid pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz             liveness check
//	POST /v1/layout           CSV in, layout document out
//	POST /v1/render/{format}  CSV in, rendered artifact out
//
// Request bodies are JSON:
//
//	{"name": "ec.csv", "csv": "code,name,...", "options": {"prefixes": ["ENC"]}}
//
// Options not present in the request keep the server defaults.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/coursegrid/pkg/pipeline"
)

// DefaultMaxBody caps request bodies.
const DefaultMaxBody = 4 << 20

// Server serves the pipeline of one [pipeline.Runner].
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	maxBody  int64
	timeout  time.Duration
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxBody sets the request body limit in bytes.
func WithMaxBody(n int64) Option { return func(s *Server) { s.maxBody = n } }

// WithTimeout bounds the time spent on one request.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// New returns a server running requests through runner. defaults supplies
// every option a request leaves out.
func New(runner *pipeline.Runner, defaults pipeline.Options, opts ...Option) *Server {
	s := &Server{
		runner:   runner,
		defaults: defaults,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		maxBody:  DefaultMaxBody,
		timeout:  time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns an http.Handler with all routes registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render/{format}", s.handleRender)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// options returns a copy of the defaults whose slices a request may
// overwrite without touching the server's copy.
func (s *Server) options() pipeline.Options {
	o := s.defaults
	o.Prefixes = slices.Clone(o.Prefixes)
	o.Palette = slices.Clone(o.Palette)
	o.Formats = slices.Clone(o.Formats)
	return o
}
