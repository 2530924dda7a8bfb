// Package server is the HTTP backend: the study chat and quiz endpoints
// plus the two browser pages.
package server

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/versely/internal/chat"
	"github.com/abhisek/versely/internal/quiz"
	"github.com/abhisek/versely/internal/render"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

const shutdownTimeout = 30 * time.Second

// Server serves the versely API and pages.
type Server struct {
	chat     *chat.Service
	quiz     *quiz.Generator
	renderer *render.Renderer
	pages    *template.Template
	logger   zerolog.Logger
	newID    func() string
}

// New creates a Server. renderer may be nil, in which case replies are
// returned as escaped text in the html field.
func New(chatSvc *chat.Service, gen *quiz.Generator, renderer *render.Renderer, logger zerolog.Logger) (*Server, error) {
	pages, err := template.ParseFS(templatesFS, "templates/*.gohtml")
	if err != nil {
		return nil, errors.Wrap(err, "parse page templates")
	}
	return &Server{
		chat:     chatSvc,
		quiz:     gen,
		renderer: renderer,
		pages:    pages,
		logger:   logger.With().Str("component", "server").Logger(),
		newID:    chat.NewMessageID,
	}, nil
}

// Handler returns the routed handler with request logging.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	}))
	r.Use(middleware.Recoverer)

	r.Get("/", s.index)
	r.Get("/quiz", http.RedirectHandler("/quiz/", http.StatusMovedPermanently).ServeHTTP)
	r.Get("/quiz/", s.quizPage)
	r.Get("/healthz", s.healthz)

	r.Post("/api/chat", s.handleChat)
	r.Post("/quiz/generate", s.handleQuizGenerate)

	return r
}

// Run listens on addr until ctx is cancelled or the process receives
// SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if ctx == nil {
		return errors.New("ctx is nil")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		s.logger.Info().Str("addr", addr).Msg("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})

	eg.Go(func() error {
		<-egCtx.Done()
		s.logger.Info().Msg("shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error().Err(err).Msg("server shutdown error")
			return errors.Wrap(err, "shutdown")
		}
		s.logger.Info().Msg("server shutdown complete")
		return nil
	})

	return eg.Wait()
}
