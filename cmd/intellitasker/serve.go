package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZLostTK/IntelliTasker/internal/ai"
	"github.com/ZLostTK/IntelliTasker/internal/config"
	"github.com/ZLostTK/IntelliTasker/internal/storage"
	"github.com/ZLostTK/IntelliTasker/internal/task"
	"github.com/ZLostTK/IntelliTasker/internal/web"
)

var (
	serveAddr       string
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the IntelliTasker API server",
	Long: `Start the IntelliTasker API server.

Examples:
  intellitasker serve
  intellitasker serve --addr :9000
  intellitasker serve --config /etc/intellitasker.yaml`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "path to YAML config file")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := storage.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(shutdownCtx); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = store.EnsureTaskIndexes(indexCtx)
	cancel()
	if err != nil {
		return err
	}

	tasks := task.NewRepository(store.Tasks())

	if cfg.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set, AI task generation will fail until configured")
	}
	gemini := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout)
	drafts := ai.NewService(gemini)

	server := web.NewServer(tasks, drafts, Version)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
