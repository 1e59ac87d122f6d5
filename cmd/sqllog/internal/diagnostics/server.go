package diagnostics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// NewRouter routes /metrics to metrics and the health endpoints to health.
// Every request except the probes is logged.
func NewRouter(logger zerolog.Logger, metrics http.Handler, health *Health) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger, "/livez", "/readyz"))

	r.Method(http.MethodGet, "/metrics", metrics)
	r.Method(http.MethodGet, "/livez", health.LiveHandler())
	r.Method(http.MethodGet, "/readyz", health.ReadyHandler())
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Response[map[string]string]{Data: map[string]string{"status": "pong"}})
	})
	return r
}

// requestLogger logs one event per request, at warn for 4xx and error
// for 5xx responses.
func requestLogger(logger zerolog.Logger, skipPaths ...string) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			event := logger.Info()
			switch {
			case status >= 500:
				event = logger.Error()
			case status >= 400:
				event = logger.Warn()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Dur("duration", time.Since(start)).
				Int("bytes", ww.BytesWritten()).
				Str("remote_addr", r.RemoteAddr).
				Msg("request completed")
		})
	}
}

// Server is the diagnostics HTTP server of the CLI.
type Server struct {
	srv    *http.Server
	addr   string
	logger zerolog.Logger
	done   chan struct{}
}

// Start listens on addr and serves handler in the background.
func Start(addr string, handler http.Handler, logger zerolog.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	s := &Server{
		srv: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		addr:   ln.Addr().String(),
		logger: logger,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		logger.Info().Str("addr", s.addr).Msg("serving diagnostics")
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("diagnostics server failed")
		}
	}()

	return s, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.addr
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("diagnostics server shutdown failed")
	}
	<-s.done
}
