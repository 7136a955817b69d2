package main

import (
	"context"
	"errors"
	"net/http"
	"notekeeper/cmd/internal/config"
	"notekeeper/cmd/internal/domain/database"
	"notekeeper/cmd/internal/domain/database/repository"
	"notekeeper/cmd/internal/http/handler"
	"notekeeper/cmd/internal/http/router"
	"notekeeper/cmd/internal/service"
	"notekeeper/cmd/internal/utils/validators"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads env vars depending on environment
	if err := config.LoadEnv(ctx); err != nil {
		log.Fatalf("unable to load environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	db, err := database.Open(&cfg.Database)
	if err != nil {
		exitOnStoreError(err)
	}

	noteRepo := repository.NewNoteRepository(db)
	if err = noteRepo.EnsureSchema(); err != nil {
		_ = noteRepo.Close()
		exitOnStoreError(err)
	}
	log.Infof("connected to %s store, notes table ready", cfg.Database.Driver)

	noteService := service.NewNoteService(noteRepo, validators.New())
	noteRoutes := handler.NewNoteDefault(noteService)

	e := router.New(noteRoutes, &router.Config{
		BodyLimit:    cfg.BodyLimit,
		StaticDir:    cfg.StaticDir,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	e.Logger.SetLevel(cfg.LogLevel)

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.ListenAddr())
		serverErr <- e.Start(cfg.ListenAddr())
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down...")
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			_ = noteRepo.Close()
			log.Fatalf("server stopped: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("failed to shut down server: %v", err)
	}

	if err := noteRepo.Close(); err != nil {
		log.Errorf("failed to close store: %v", err)
	}
}

// exitOnStoreError terminates the process: the service never runs without its store.
func exitOnStoreError(err error) {
	if errors.Is(err, database.ErrStoreUnavailable) {
		log.Fatalf("store unavailable at startup: %v", err)
	}
	log.Fatalf("unable to initialize store: %v", err)
}
