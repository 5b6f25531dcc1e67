// Package server exposes scatter rendering over HTTP.
//
// A single POST /render endpoint accepts a JSON render request and returns
// the PNG bytes. Responses carry an X-Request-ID header, and when a cache is
// configured, an X-Cache header reporting hit or miss.
package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/plotkit/plotkit/pkg/cache"
	"github.com/plotkit/plotkit/pkg/errors"
	"github.com/plotkit/plotkit/pkg/observability"
	"github.com/plotkit/plotkit/pkg/plot"
)

// DefaultCacheTTL is how long rendered images stay cached.
const DefaultCacheTTL = time.Hour

// RenderRequest is the JSON body accepted by POST /render.
type RenderRequest struct {
	XS           []float64 `json:"xs"`
	YS           []float64 `json:"ys"`
	Width        int       `json:"width,omitempty"`
	Height       int       `json:"height,omitempty"`
	MarkerRadius float64   `json:"marker_radius,omitempty"`
	AutoRange    *bool     `json:"auto_range,omitempty"`
	XMin         float64   `json:"x_min,omitempty"`
	XMax         float64   `json:"x_max,omitempty"`
	YMin         float64   `json:"y_min,omitempty"`
	YMax         float64   `json:"y_max,omitempty"`
}

// Options converts the request into render options, filling defaults for
// omitted fields.
func (r RenderRequest) Options() plot.Options {
	opts := plot.DefaultOptions()
	if r.Width > 0 {
		opts.Width = r.Width
	}
	if r.Height > 0 {
		opts.Height = r.Height
	}
	if r.MarkerRadius > 0 {
		opts.MarkerRadius = r.MarkerRadius
	}
	if r.AutoRange != nil {
		opts.AutoRange = *r.AutoRange
	}
	if !opts.AutoRange {
		opts.XMin, opts.XMax = r.XMin, r.XMax
		opts.YMin, opts.YMax = r.YMin, r.YMax
	}
	return opts
}

// Server is the HTTP render service.
type Server struct {
	router *chi.Mux
	cache  cache.Cache
	logger *log.Logger
	ttl    time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithCache sets the render artifact cache. Without it every request renders.
func WithCache(c cache.Cache) Option {
	return func(s *Server) { s.cache = c }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithCacheTTL overrides DefaultCacheTTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Server) { s.ttl = ttl }
}

// New creates a Server with its routes mounted.
func New(opts ...Option) *Server {
	s := &Server{
		router: chi.NewRouter(),
		logger: log.Default(),
		ttl:    DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(requestID)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/render", s.handleRender)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// requestID tags every response with a fresh UUID, honoring one supplied by
// the caller.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	opts := req.Options()

	if s.cache != nil {
		key := cache.RenderKey(req.XS, req.YS, opts)
		if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, "render")
			w.Header().Set("X-Cache", "hit")
			writePNG(w, data)
			return
		}
		observability.Cache().OnCacheMiss(ctx, "render")
		w.Header().Set("X-Cache", "miss")
	}

	start := time.Now()
	observability.Render().OnRenderStart(ctx, len(req.XS))

	var buf bytes.Buffer
	err := plot.Render(&buf, req.XS, req.YS, opts)
	observability.Render().OnRenderComplete(ctx, len(req.XS), time.Since(start), err)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.IsValidation(err) {
			status = http.StatusBadRequest
		}
		s.logger.Error("render failed", "error", err, "points", len(req.XS))
		s.writeError(w, status, errors.UserMessage(err))
		return
	}

	data := buf.Bytes()
	if s.cache != nil {
		key := cache.RenderKey(req.XS, req.YS, opts)
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "render", len(data))
		}
	}

	s.logger.Debug("rendered scatter plot",
		"points", len(req.XS),
		"width", opts.Width,
		"height", opts.Height,
		"duration", time.Since(start))
	writePNG(w, data)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}
