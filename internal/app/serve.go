package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stringd/internal/api"
	"stringd/internal/watcher"
)

var (
	serveAddr     string
	serveWatchDir string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the string analysis REST API",
		Long: `Start the HTTP server exposing the string analysis API.

Endpoints:
  POST   /strings                              analyze and store a string
  GET    /strings                              list stored strings (filterable)
  GET    /strings/{value}                      fetch one stored string
  DELETE /strings/{value}                      delete one stored string
  GET    /strings/filter-by-natural-language   filter via plain-words query
  GET    /health                               liveness and record count

When --watch-dir is set (or watch.dir is configured), files dropped into
that directory are ingested while the server runs.`,
		Example: `  # Serve on the configured address
  stringd serve

  # Serve on a specific address
  stringd serve --addr 0.0.0.0:9090

  # Serve and ingest dropped files
  stringd serve --watch-dir ./inbox`,
		RunE: runServe,
	}
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")
	serveCmd.Flags().StringVar(&serveWatchDir, "watch-dir", "", "also ingest files dropped into this directory")

	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}
	if cfg.Server.DBPath != "" && dbPath == "" {
		dbPath = cfg.Server.DBPath
	}

	st, svc, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	watchDir := serveWatchDir
	if watchDir == "" {
		watchDir = cfg.Watch.Dir
	}
	if watchDir != "" {
		w, err := watcher.New(svc, watchDir, logger)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("failed to start ingest watcher: %w", err)
		}
		defer w.Stop()
	}

	server := api.NewServer(addr, svc, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("Received signal, shutting down", map[string]interface{}{
			"signal": sig.String(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
