// Package server is the wiring layer: it assembles the dependency chain
// (DB → services → handlers), defines the routes, and runs the HTTP server
// with graceful shutdown.
//
// ROUTE MAP:
//
//	POST /api/register        create account
//	POST /api/login           authenticate, set session cookie
//	POST /api/logout          clear session cookie
//	GET  /api/me              current user            (session)
//	GET  /api/goals           career catalog
//	GET  /api/quiz/{goal}     quiz questions
//	POST /api/quiz/{goal}     submit answers          (session)
//	GET  /api/progress        dashboard data          (session)
//	GET  /api/leaderboard     ranked users
//	POST /api/reminder        send reminder now       (session)
//	POST /api/reminder/daily  gated daily reminder    (session)
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/skillgap/internal/auth"
	"github.com/sakif/skillgap/internal/config"
	"github.com/sakif/skillgap/internal/handler"
	"github.com/sakif/skillgap/internal/middleware"
	"github.com/sakif/skillgap/internal/notifier"
	sqliteRepo "github.com/sakif/skillgap/internal/repository/sqlite"
	"github.com/sakif/skillgap/internal/service"
)

// Server owns the router, the database connection, and the config. The DB
// handle is explicitly owned here and closed on shutdown — no package-level
// connection state anywhere.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain. mailer may be nil (notifier
// disabled); every other dependency is required.
func New(cfg config.Config, logger *slog.Logger, mailer notifier.Sender) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(mailer); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes(mailer notifier.Sender) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.SessionSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	// One sqlite.DB implements both repository interfaces; each service
	// receives only the interface it needs.
	authService := service.NewAuthService(s.db, s.logger)
	assessmentService := service.NewAssessmentService(s.db, s.db, s.config.StreakPolicy, s.logger)
	leaderboardService := service.NewLeaderboardService(s.db, s.logger)
	reminderService := service.NewReminderService(s.db, mailer, s.logger)

	authHandler := handler.NewAuthHandler(authService, tokens, s.logger)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService, s.logger)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService, s.logger)
	reminderHandler := handler.NewReminderHandler(reminderService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		// Public surface.
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
		r.Get("/goals", assessmentHandler.HandleGoals)
		r.Get("/quiz/{goal}", assessmentHandler.HandleQuiz)
		r.Get("/leaderboard", leaderboardHandler.HandleLeaderboard)

		// Everything per-user requires the session cookie.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser(tokens))
			r.Get("/me", authHandler.HandleMe)
			r.Post("/quiz/{goal}", assessmentHandler.HandleSubmit)
			r.Get("/progress", assessmentHandler.HandleProgress)
			r.Post("/reminder", reminderHandler.HandleSendNow)
			r.Post("/reminder/daily", reminderHandler.HandleSendDaily)
		})
	})

	return nil
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully:
// stop accepting connections, drain in-flight requests for up to 30s, close
// the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
			slog.String("streakPolicy", string(s.config.StreakPolicy)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
