// Package server exposes the dashboard engine over HTTP: an HTML page,
// the SVG chart, JSON snapshots, a websocket push stream and Prometheus
// metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"github.com/valter-silva-au/sentinel/internal/geometry"
	"github.com/valter-silva-au/sentinel/internal/observability"
	"github.com/valter-silva-au/sentinel/pkg/models"
)

// DefaultPushInterval is how often /ws pushes a snapshot.
const DefaultPushInterval = 250 * time.Millisecond

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Engine is the part of the dashboard engine the server reads and resets.
type Engine interface {
	Snapshot() models.DashboardSnapshot
	Reset()
}

// Options configure a Server. Zero values fall back to defaults.
type Options struct {
	Addr         string
	PushInterval time.Duration
	// Metrics serves /metrics. Nil disables the route.
	Metrics http.Handler
	Logger  observability.Logger
	Style   geometry.ChartStyle
}

// Server is the HTTP surface of sentinel.
type Server struct {
	engine   Engine
	opts     Options
	logger   observability.Logger
	upgrader websocket.Upgrader

	mu     sync.Mutex
	server *http.Server
	stop   chan struct{}
	once   sync.Once
}

// New creates a Server over engine.
func New(engine Engine, opts Options) *Server {
	if opts.PushInterval <= 0 {
		opts.PushInterval = DefaultPushInterval
	}
	if opts.Logger == nil {
		opts.Logger = observability.NoopLogger()
	}
	if opts.Style == (geometry.ChartStyle{}) {
		opts.Style = geometry.DefaultChartStyle()
	}
	return &Server{
		engine: engine,
		opts:   opts,
		logger: opts.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		stop: make(chan struct{}),
	}
}

// Handler returns the routed handler. Everything except the websocket and
// metrics routes is gzip-compressed when the client accepts it.
func (s *Server) Handler() http.Handler {
	content := http.NewServeMux()
	content.HandleFunc("GET /{$}", s.handleIndex)
	content.HandleFunc("GET /chart.svg", s.handleChart)
	content.HandleFunc("GET /api/snapshot", s.handleSnapshot)
	content.HandleFunc("POST /api/reset", s.handleReset)
	content.HandleFunc("GET /health", s.handleHealth)

	mux := http.NewServeMux()
	mux.Handle("/", gzhttp.GzipHandler(content))
	mux.HandleFunc("GET /ws", s.handleWebsocket)
	if s.opts.Metrics != nil {
		mux.Handle("GET /metrics", s.opts.Metrics)
	}
	return s.withRequestLogging(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
// and closes open websocket streams.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.server = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", observability.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving http: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections, ends websocket streams and waits
// for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.once.Do(func() { close(s.stop) })

	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	s.logger.Info(ctx, "http server stopped")
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, indexData{Snapshot: s.engine.Snapshot()}); err != nil {
		s.logger.Error(r.Context(), "rendering index", observability.Err(err))
	}
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	doc, err := geometry.Document(s.engine.Snapshot().Samples, s.opts.Style)
	if err != nil {
		s.logger.Error(r.Context(), "rendering chart", observability.Err(err))
		http.Error(w, "rendering chart", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(doc)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.engine.Reset()
	s.logger.Info(r.Context(), "engine reset via http")
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.engine.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"running": snap.Running,
		"time":    time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, log := observability.WithRequestLogger(r.Context(), s.logger)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		log.Debug(ctx, "http request",
			observability.String("method", r.Method),
			observability.String("path", r.URL.Path),
			observability.String("duration", time.Since(start).String()),
		)
	})
}
