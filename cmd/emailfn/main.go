// The emailfn binary is the standalone report-email function: a stateless
// HTTP service that renders posted report data into a prepared email.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/buildtrack/sitereport/internal/server/handlers"
	"github.com/buildtrack/sitereport/internal/server/router"
	"github.com/buildtrack/sitereport/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	port := os.Getenv("EMAILFN_PORT")
	if port == "" {
		port = "8090"
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	handler := handlers.NewEmailFnHandler(baseLogger.Named("handlers.emailfn"))
	engine := router.NewEmailFn(handler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("email function starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
