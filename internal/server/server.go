// Package server exposes the planner over HTTP. It serves computed
// plans, graph snapshots, and the plan archive as a small JSON API,
// plus DOT/SVG renderings of the graph.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/convoyhq/convoy/pkg/manifest"
	"github.com/convoyhq/convoy/pkg/plan"
	"github.com/convoyhq/convoy/pkg/store"
)

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// MaxIterations bounds each planning run.
	MaxIterations int
	// CacheTTL is how long computed plans stay cached.
	CacheTTL time.Duration
}

// Server wires the planner, the manifest loader, and the optional plan
// archive behind an HTTP API.
type Server struct {
	loader manifest.Loader
	runner *plan.Runner
	store  store.Store // nil when archiving is disabled
	logger *log.Logger
	opts   Options

	httpServer *http.Server
}

// New creates a server. st may be nil, which disables the archive
// endpoints.
func New(loader manifest.Loader, runner *plan.Runner, st store.Store, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}

	s := &Server{
		loader: loader,
		runner: runner,
		store:  st,
		logger: logger,
		opts:   opts,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/plan", s.handlePlan)
		r.Get("/graph", s.handleGraph)
		r.Get("/report", s.handleReport)
		r.Get("/plans", s.handlePlansList)
		r.Get("/plans/{id}", s.handlePlansGet)
		r.Delete("/plans/{id}", s.handlePlansDelete)
	})

	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the route tree, mainly for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// ListenAndServe blocks until the context is cancelled or the listener
// fails. Shutdown drains in-flight requests for up to ten seconds.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.opts.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// logRequests logs each request with its duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
