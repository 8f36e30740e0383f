package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"inkblog/cmd/app"
	"inkblog/internal/config"
	handlers "inkblog/internal/handler"
	"inkblog/internal/logging"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	if cfg.Session.Secret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}

	db, _, services := app.App(cfg, logger)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, cfg, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           gzhttp.GzipHandler(app.NewRouter(handler, cfg, logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server started", "addr", server.Addr, "database", cfg.DB.DbNAME)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
