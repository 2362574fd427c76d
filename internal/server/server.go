// Package server implements the pbl HTTP API.
//
// Routes:
//
//	GET    /healthz
//	POST   /api/v1/render
//	GET    /api/v1/diagrams
//	PUT    /api/v1/diagrams/{project}
//	GET    /api/v1/diagrams/{project}
//	DELETE /api/v1/diagrams/{project}
//	GET    /api/v1/diagrams/{project}/{kind}?format=svg
//
// Errors are returned as {"error": {"code": "...", "message": "..."}}.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vipuljat/ProjectBasedLearning/pkg/config"
	"github.com/vipuljat/ProjectBasedLearning/pkg/pipeline"
	"github.com/vipuljat/ProjectBasedLearning/pkg/store"
)

// Server serves the API over a document store and a rendering pipeline.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
	cfg    config.ServerConfig
	router chi.Router
}

// New builds a Server. A nil logger means log.Default(); zero timeouts and
// body limit fall back to config.Default().
func New(st store.Store, runner *pipeline.Runner, logger *log.Logger, cfg config.ServerConfig) *Server {
	if logger == nil {
		logger = log.Default()
	}
	def := config.Default().Server
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if cfg.ReadTimeout.Duration == 0 {
		cfg.ReadTimeout = def.ReadTimeout
	}
	if cfg.WriteTimeout.Duration == 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.ShutdownTimeout.Duration == 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}

	s := &Server{store: st, runner: runner, logger: logger, cfg: cfg}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/render", s.handleRender)
		r.Route("/diagrams", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Route("/{project}", func(r chi.Router) {
				r.Put("/", s.handlePut)
				r.Get("/", s.handleGet)
				r.Delete("/", s.handleDelete)
				r.Get("/{kind}", s.handleRenderStored)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout.Duration,
		ReadHeaderTimeout: s.cfg.ReadTimeout.Duration,
		WriteTimeout:      s.cfg.WriteTimeout.Duration,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.cfg.ShutdownTimeout.Duration)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout.Duration)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// startedAt lets handlers report uptime.
var startedAt = time.Now()
