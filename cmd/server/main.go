package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/wordweave/wordweave/internal/api"
	"github.com/wordweave/wordweave/internal/config"
	"github.com/wordweave/wordweave/internal/recognize"
	"github.com/wordweave/wordweave/internal/render"
	"github.com/wordweave/wordweave/internal/style"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	catalog, err := style.LoadCatalog(cfg.ThemeDir)
	if err != nil {
		log.Error("load theme catalog", "error", err)
		os.Exit(1)
	}

	// Chart recognition is optional; without a key the service renders
	// only caller-supplied chart data.
	var recognizer render.Recognizer
	var claude *recognize.ClaudeClient
	if cfg.AnthropicAPIKey != "" {
		claude = recognize.NewClaudeClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		recognizer = claude
	}

	service := render.NewService(catalog, recognizer, log, cfg.ChartWorkers)
	srv := api.NewServer(service, catalog, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if claude != nil {
			claude.Close()
		}
	}()

	log.Info("starting wordweave", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
