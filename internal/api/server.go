package api

import (
	"bufio"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/JakeFAU/urinfo/internal/config"
	"github.com/JakeFAU/urinfo/internal/logging"
	"github.com/JakeFAU/urinfo/internal/metrics"
	"github.com/JakeFAU/urinfo/internal/urinfo"
)

//go:embed static
var staticFiles embed.FS

var nullBody = []byte("null")

// IDGenerator produces request IDs.
type IDGenerator interface {
	NewID() (string, error)
}

// Server wires HTTP handlers to the resolver.
type Server struct {
	router   chi.Router
	resolver urinfo.MetadataResolver
	idGen    IDGenerator
	cfg      config.Config
	logger   *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(
	resolver urinfo.MetadataResolver,
	idGen IDGenerator,
	cfg config.Config,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		resolver: resolver,
		idGen:    idGen,
		cfg:      cfg,
		logger:   logger,
	}
	r := chi.NewRouter()
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(metrics.Middleware)
	r.Use(cacheControlMiddleware(cfg.CacheControl()))
	r.Use(timeoutMiddleware(cfg.Server.RequestTimeout))

	r.Get("/", s.index)
	r.Get("/robots.txt", s.robots)
	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/fetch", s.fetch)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNull(w, http.StatusNotFound)
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) fetch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !query.Has("uri") {
		writeNull(w, http.StatusNotFound)
		return
	}
	uri := query.Get("uri")
	if !hasHTTPPrefix(uri) {
		writeNull(w, http.StatusNotFound)
		return
	}

	meta, err := s.resolver.Resolve(r.Context(), uri)
	if err != nil {
		logging.FromContext(r.Context(), s.logger).Debug("fetch unresolved",
			zap.String("uri", uri),
			zap.Bool("unresolvable", errors.Is(err, urinfo.ErrUnresolvable)),
		)
		writeNull(w, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	s.writeStatic(w, "static/index.html", "text/html; charset=utf-8")
}

func (s *Server) robots(w http.ResponseWriter, _ *http.Request) {
	s.writeStatic(w, "static/robots.txt", "text/plain; charset=utf-8")
}

func (s *Server) writeStatic(w http.ResponseWriter, name, contentType string) {
	data, err := staticFiles.ReadFile(name)
	if err != nil {
		s.logger.Error("static file missing", zap.String("name", name), zap.Error(err))
		writeNull(w, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("static write failed", zap.String("name", name), zap.Error(err))
	}
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	// The resolver has no downstream dependencies to check.
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// hasHTTPPrefix reports whether uri starts with "http", ignoring case.
func hasHTTPPrefix(uri string) bool {
	return len(uri) >= 4 && strings.EqualFold(uri[:4], "http")
}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID, err := s.idGen.NewID()
		if err != nil {
			s.logger.Warn("request id generation failed", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		ctx := logging.WithContext(r.Context(), s.logger.With(zap.String("request_id", reqID)))
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		logging.FromContext(r.Context(), s.logger).Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.FromContext(r.Context(), s.logger).Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"),
				)
				writeNull(w, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func cacheControlMiddleware(value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		timeout := http.TimeoutHandler(next, d, string(nullBody))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timeout.ServeHTTP(&timeoutJSONWriter{ResponseWriter: w}, r)
		})
	}
}

// timeoutJSONWriter labels the TimeoutHandler's own 503 body as JSON. Responses
// produced by the wrapped handler already carry their Content-Type.
type timeoutJSONWriter struct {
	http.ResponseWriter
}

func (w *timeoutJSONWriter) WriteHeader(code int) {
	if code == http.StatusServiceUnavailable && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.ResponseWriter.WriteHeader(code)
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("write response: %w", err)
	}
	return n, nil
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := rw.ResponseWriter.(http.Hijacker); ok {
		conn, buf, err := h.Hijack()
		if err != nil {
			return nil, nil, fmt.Errorf("hijack connection: %w", err)
		}
		return conn, buf, nil
	}
	return nil, nil, errors.New("hijacker not supported")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("write JSON failed", zap.Error(err))
	}
}

func writeNull(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(nullBody); err != nil {
		zap.L().Warn("write null body failed", zap.Error(err))
	}
}
