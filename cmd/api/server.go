package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"media-admin-backend/pkg/container"
)

func Serve() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ========== 1. BUILD DI CONTAINER ==========
	appContainer, err := container.NewContainer(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize container")
		os.Exit(1)
	}
	defer appContainer.Cleanup()

	// ========== 2. SETUP ROUTER ==========
	router := SetupRouter(appContainer)

	// ========== 3. CONFIGURE HTTP SERVER ==========
	port := appContainer.Config.App.Port
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", port),
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// ========== 4. START SERVER (NON-BLOCKING) ==========
	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", port).
			Str("env", appContainer.Config.App.Environment).
			Msg("Server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// ========== 5. GRACEFUL SHUTDOWN ==========
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		log.Error().Err(err).Msg("Server failed")
	}

	log.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
