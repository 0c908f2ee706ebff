package app

import (
	"fmt"
	"os"
	"path/filepath"

	"stringd/internal/config"
	"stringd/internal/logging"
	"stringd/internal/service"
	"stringd/internal/store"
)

// openService opens the database, ensures the schema exists, and wraps it in
// the analysis service. The caller owns the returned store and must Close it.
func openService() (*store.Store, *service.Service, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, nil, err
	}

	st, err := store.New(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := st.CreateSchema(); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to create database schema: %w", err)
	}

	return st, service.New(st), nil
}

// loadConfig reads the config file from the XDG config directory, falling
// back to defaults when no file exists.
func loadConfig() (*config.Config, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config directory: %w", err)
	}
	return config.Load(dir)
}

// getDefaultPIDFile returns the default PID file path for the watch daemon.
func getDefaultPIDFile() (string, error) {
	dir, err := stringdDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.pid"), nil
}

// getDefaultLogFile returns the default log file path for the watch daemon.
func getDefaultLogFile() (string, error) {
	dir, err := stringdDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "watch.log"), nil
}

// stringdDir returns ~/.stringd, creating it if needed.
func stringdDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	dir := filepath.Join(home, ".stringd")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create stringd directory: %w", err)
	}
	return dir, nil
}

// newLogger builds a logger from the config file settings.
func newLogger(cfg *config.Config) *logging.Logger {
	format := logging.HumanFormat
	if cfg.Logging.Format == string(logging.JSONFormat) {
		format = logging.JSONFormat
	}
	return logging.New(logging.Config{
		Format: format,
		Level:  logging.Level(cfg.Logging.Level),
	})
}
