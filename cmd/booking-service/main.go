package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dbertella/bbs/internal/auth"
	"github.com/dbertella/bbs/internal/config"
	"github.com/dbertella/bbs/internal/database"
	"github.com/dbertella/bbs/internal/events"
	"github.com/dbertella/bbs/internal/identity"
	"github.com/dbertella/bbs/internal/repository"
	"github.com/dbertella/bbs/internal/server"
	"github.com/dbertella/bbs/internal/service"
	"github.com/rs/zerolog"
)

func main() {
	// Initialize logger with console writer for better formatting in containers
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().
		Timestamp().
		Logger()

	// Load configuration
	cfg := config.Load()

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	zerolog.DefaultContextLogger = &logger

	if cfg.Session.Secret == "" {
		logger.Fatal().Msg("SESSION_SECRET is required")
	}

	// Initialize database
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Repositories
	bookingRepo := repository.NewBookingRepository(db.DB(), logger)
	userRepo := repository.NewUserRepository(db.DB(), logger)
	familyRepo := repository.NewFamilyRepository(db.DB(), logger)
	directory := repository.NewAccountDirectory(db.DB(), logger)

	// Session verification and authorization
	verifier := identity.NewCookieVerifier(cfg.Session.Secret)
	guard := auth.NewGuard(verifier, bookingRepo)

	// Event publisher is optional; without Redis the service still works
	var publisher *events.Publisher
	if cfg.Redis.URL != "" {
		publisher, err = events.NewPublisher(cfg.Redis.URL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer publisher.Close()
		logger.Info().Str("url", cfg.Redis.URL).Msg("Connected to Redis")
	}

	// Booking lifecycle service
	resolver := service.NewFamilyResolver(userRepo, familyRepo)
	bookingSvc := service.NewBookingService(bookingRepo, userRepo, guard, directory, resolver, publisher, logger)

	// HTTP server
	srv := server.New(
		cfg.Server.Host+":"+cfg.Server.Port,
		db.DB(),
		server.NewBookingHandler(bookingSvc, &logger),
		server.NewUserHandler(bookingSvc, &logger),
		server.Options{
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		&logger,
	)

	// Channel to listen for errors from server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for an error or interrupt signal
	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	}

	// Attempt graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server stopped")
}
