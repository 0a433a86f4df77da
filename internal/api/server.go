package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"movieroulette/internal/config"
	"movieroulette/internal/details"
	"movieroulette/internal/discovery"
	"movieroulette/internal/logging"
	"movieroulette/internal/seen"
)

// Service is the session surface exposed over HTTP.
type Service interface {
	Suggest(ctx context.Context, filter discovery.Filter) (*details.Movie, error)
	Show(ctx context.Context, id string) (*details.Movie, error)
	MarkSeen(ctx context.Context, id, title string) error
	Forget(ctx context.Context, id string) error
	Reset(ctx context.Context) (int64, error)
	Seen(ctx context.Context) ([]seen.Record, error)
	Genres(ctx context.Context) ([]string, error)
	Health(ctx context.Context) error
}

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	bind    string
	token   string
	service Service
	logger  *slog.Logger
	router  chi.Router

	listener net.Listener
	httpSrv  *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg *config.Config, service Service, logger *slog.Logger) *Server {
	s := &Server{
		service: service,
		logger:  logging.NewComponentLogger(logger, "api-server"),
		router:  chi.NewRouter(),
	}
	if cfg != nil {
		s.bind = cfg.API.Bind
		s.token = cfg.API.Token
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Route("/api", func(r chi.Router) {
		r.Use(bearerAuth(s.token))
		r.Get("/genres", s.handleGenres)
		r.Get("/suggestion", s.handleSuggestion)
		r.Route("/movies/{id}", func(r chi.Router) {
			r.Get("/", s.handleMovie)
			r.Get("/poster", s.handlePoster)
		})
		r.Route("/seen", func(r chi.Router) {
			r.Get("/", s.handleSeenList)
			r.Post("/", s.handleSeenAdd)
			r.Delete("/", s.handleSeenReset)
			r.Delete("/{id}", s.handleSeenRemove)
		})
	})
}

// Handler exposes the router for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the bound listener address once Run has started listening.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run listens on the configured bind address and serves until ctx ends.
func (s *Server) Run(ctx context.Context) error {
	bind := strings.TrimSpace(s.bind)
	if bind == "" {
		return errors.New("api bind address required")
	}
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	return s.Serve(ctx, listener)
}

// Serve handles requests on listener until ctx ends, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.listener = listener
	s.httpSrv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	s.logger.Info("api server listening",
		logging.String(logging.FieldEventType, "api_listening"),
		logging.String("address", listener.Addr().String()),
	)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// requestLogger tags the request context with chi's request id and logs one
// line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))
		logging.WithContext(ctx, s.logger).Debug("api request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", ww.Status()),
			logging.Int("bytes", ww.BytesWritten()),
			logging.Duration("latency", time.Since(start)),
		)
	})
}
