package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/pprof"
	"runtime"
	"time"

	"developer-directory/internal/config"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ReadyFunc reports whether the service can take traffic.
type ReadyFunc func(ctx context.Context) error

// Server serves operational endpoints (metrics, readiness, pprof) on a
// separate listener from the public API.
type Server struct {
	svc    *http.Server
	logger *zap.Logger
}

func NewServer(cfg config.AdminConfig, gatherer prometheus.Gatherer, ready ReadyFunc, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pprofEnabled(cfg.Pprof, "block", false) {
		runtime.SetBlockProfileRate(1)
	}
	if pprofEnabled(cfg.Pprof, "mutex", false) {
		runtime.SetMutexProfileFraction(1)
	}

	timeout := 45 * time.Second
	return &Server{
		svc: &http.Server{
			Addr:         cfg.Addr,
			Handler:      handler(gatherer, ready, cfg.Pprof),
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
			IdleTimeout:  timeout,
		},
		logger: logger,
	}
}

func (s *Server) BindAddress() string {
	return s.svc.Addr
}

func (s *Server) Handler() http.Handler {
	return s.svc.Handler
}

// Listen blocks until the server stops. A clean shutdown returns nil.
func (s *Server) Listen() error {
	if s == nil || s.svc == nil {
		return nil
	}
	s.logger.Info("admin server listening", zap.String("addr", s.svc.Addr))
	if err := s.svc.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil || s.svc == nil {
		return nil
	}
	return s.svc.Shutdown(ctx)
}

// pprofHandlers lists the profiles served under /debug/pprof/. Each can be
// toggled with PPROF_<NAME>=yes|no.
var pprofHandlers = map[string]bool{
	"allocs":       true,
	"block":        true,
	"cmdline":      true,
	"goroutine":    true,
	"heap":         true,
	"mutex":        true,
	"profile":      true,
	"threadcreate": false,
	"trace":        false,
}

func pprofEnabled(overrides map[string]bool, name string, zero bool) bool {
	if v, ok := overrides[name]; ok {
		return v
	}
	return zero
}

func handler(gatherer prometheus.Gatherer, ready ReadyFunc, pprofOverrides map[string]bool) http.Handler {
	r := mux.NewRouter()

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Methods(http.MethodGet).Path("/metrics").Handler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Methods(http.MethodGet).Path("/ready").HandlerFunc(readyHandler(ready))

	r.HandleFunc("/debug/pprof/", pprof.Index)
	for name, add := range pprofHandlers {
		if !pprofEnabled(pprofOverrides, name, add) {
			continue
		}
		path := "/debug/pprof/" + name
		switch name {
		case "cmdline":
			r.HandleFunc(path, pprof.Cmdline)
		case "profile":
			r.HandleFunc(path, pprof.Profile)
		case "trace":
			r.HandleFunc(path, pprof.Trace)
		default:
			r.Handle(path, pprof.Handler(name))
		}
	}

	return r
}

func readyHandler(ready ReadyFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		status, body := http.StatusOK, map[string]string{"status": "ok"}
		if ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := ready(ctx); err != nil {
				status, body = http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()}
			}
		}

		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}
