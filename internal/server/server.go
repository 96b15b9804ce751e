// Package server exposes the watch command's operational HTTP surface:
// health, Prometheus metrics and the most recently generated sidebar.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docsidebar/internal/logfields"
	"git.home.luguber.info/inful/docsidebar/internal/metrics"
	"git.home.luguber.info/inful/docsidebar/internal/render"
)

// Options wires the server to the rest of the watch loop.
type Options struct {
	// Registry backs /metrics. Nil serves the default registry.
	Registry *prom.Registry
	// Store backs /sidebar.
	Store *Store
	// Rescan, when set, is invoked by POST /rescan in its own goroutine; the
	// response does not wait for it.
	Rescan func()
}

// Server represents the ops HTTP server.
type Server struct {
	Addr   string
	router *chi.Mux
	server *http.Server
	opts   Options
}

// New creates a new ops server listening on addr.
func New(addr string, opts Options) *Server {
	if opts.Store == nil {
		opts.Store = NewStore()
	}
	s := &Server{
		Addr:   addr,
		router: chi.NewRouter(),
		opts:   opts,
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/health", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", metrics.HTTPHandler(s.opts.Registry))
	s.router.Get("/sidebar", s.handleSidebar)
	if s.opts.Rescan != nil {
		s.router.Post("/rescan", s.handleRescan)
	}
}

// Start binds the listener and serves in the background. Bind errors are
// returned synchronously.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("ops server listen %s: %w", s.Addr, err)
	}
	slog.Info("Ops server started", logfields.Addr(ln.Addr().String()))
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Ops server error", logfields.Error(err))
		}
	}()
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

func (s *Server) handleSidebar(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.opts.Store.Get()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "sidebar not generated yet")
		return
	}

	format, err := render.ParseFormat(r.URL.Query().Get("format"))
	if err != nil || format == render.FormatTree {
		writeError(w, http.StatusBadRequest, "format must be json or yaml")
		return
	}

	w.Header().Set("Last-Modified", snap.GeneratedAt.UTC().Format(http.TimeFormat))
	if format == render.FormatYAML {
		w.Header().Set("Content-Type", "application/yaml")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	if err := render.Write(w, snap.Map, format, false); err != nil {
		slog.Error("Failed to write sidebar response", logfields.Error(err))
	}
}

func (s *Server) handleRescan(w http.ResponseWriter, _ *http.Request) {
	go s.opts.Rescan()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write([]byte(`{"status":"accepted"}`))
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// requestLogger logs method, path, status and duration through slog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		slog.Debug("HTTP request",
			logfields.Method(r.Method),
			logfields.Path(r.URL.Path),
			logfields.Status(status),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	})
}
