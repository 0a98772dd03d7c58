package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tsp_router/pkg/config"
)

// NewServer creates an HTTP server with all routes. Every route runs under
// the same middleware stack: response headers outermost, then load
// shedding, panic recovery, a request deadline, and request logging
// innermost.
func NewServer(cfg config.Config, handlers *Handlers) *http.Server {
	shed := newLoadShedder(cfg.MaxConcurrent)

	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		h = logRequests(h)
		h = deadline(h, cfg.RequestTimeout.Std())
		h = recoverPanics(h)
		h = shed.wrap(h)
		return responseHeaders(h, cfg.CORSOrigin)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/network/load", wrap(handlers.HandleLoadNetwork))
	mux.HandleFunc("GET /api/v1/network/status", wrap(handlers.HandleNetworkStatus))
	mux.HandleFunc("POST /api/v1/points/snap", wrap(handlers.HandleSnapPoints))
	mux.HandleFunc("GET /api/v1/points/status", wrap(handlers.HandlePointsStatus))
	mux.HandleFunc("POST /api/v1/solve/{algorithm}", wrap(handlers.HandleSolve))
	mux.HandleFunc("GET /api/v1/health", wrap(handlers.HandleHealth))

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout.Std(),
		WriteTimeout: cfg.WriteTimeout.Std(),
	}
}

// drainTimeout bounds how long a shutdown waits for in-flight solves.
const drainTimeout = 10 * time.Second

// ListenAndServe runs the server until it fails or the process is
// interrupted, then drains in-flight requests.
func ListenAndServe(srv *http.Server) error {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGTERM, syscall.SIGINT)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case sig := <-interrupt:
		slog.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// loadShedder bounds how many requests are handled at once. Excess
// requests are rejected immediately rather than queued, so a long solve
// cannot pile up waiters behind it.
type loadShedder struct {
	slots chan struct{}
}

func newLoadShedder(limit int) *loadShedder {
	return &loadShedder{slots: make(chan struct{}, limit)}
}

func (ls *loadShedder) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case ls.slots <- struct{}{}:
		default:
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusServiceUnavailable, "service_unavailable", "")
			return
		}
		defer func() { <-ls.slots }()
		next(w, r)
	}
}

// responseHeaders sets the security headers and, when configured, the CORS
// origin on every response.
func responseHeaders(next http.HandlerFunc, corsOrigin string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Cache-Control", "no-store")
		if corsOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", corsOrigin)
		}
		next(w, r)
	}
}

// recoverPanics converts a handler panic into a 500 instead of killing the
// connection.
func recoverPanics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				slog.Error("panic in handler", "panic", v, "path", r.URL.Path)
				writeError(w, http.StatusInternalServerError, "internal_error", "")
			}
		}()
		next(w, r)
	}
}

// deadline attaches a per-request timeout to the request context.
func deadline(next http.HandlerFunc, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next(w, r.WithContext(ctx))
	}
}

// logRequests emits one debug line per request with its wall time.
func logRequests(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		began := time.Now()
		next(w, r)
		slog.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"took", time.Since(began).Round(time.Microsecond).String())
	}
}
