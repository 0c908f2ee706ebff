package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stringd/internal/watcher"
)

var (
	watchDir         string
	watchDaemon      bool
	watchDaemonChild bool
	watchPIDFile     string
	watchLogFile     string
	watchStop        bool

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Ingest strings from files dropped into a directory",
		Long: `Watch a directory and ingest strings from files dropped into it.

Each file is treated as a batch of values, one per line. Every non-empty
line is analyzed and stored, then the file is removed. Files already in the
directory are ingested on startup. Hidden files (dot-prefixed) are ignored,
so writers can stage content under a hidden name and rename it when complete.

Watch modes:
  • Foreground (default): run in the current terminal, Ctrl+C to stop
  • Daemon: run as a detached background process
  • Stop: stop a running daemon

A final sweep of the directory happens on shutdown in every mode.`,
		Example: `  # Watch the configured directory in the foreground
  stringd watch

  # Watch a specific directory
  stringd watch --dir ./inbox

  # Run as a background daemon
  stringd watch --dir ./inbox --daemon

  # Stop the running daemon
  stringd watch --stop`,
		RunE: runWatchCmd,
	}
)

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", "", "directory to watch (default from config)")
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run as background daemon")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	watchCmd.Flags().StringVar(&watchPIDFile, "pid-file", "", "PID file path (default: ~/.stringd/watch.pid)")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "log file path (default: ~/.stringd/watch.log)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop running daemon")

	// Hide the internal daemon-child flag from help
	watchCmd.Flags().MarkHidden("daemon-child")

	RootCmd.AddCommand(watchCmd)
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	if watchPIDFile == "" {
		defaultPID, err := getDefaultPIDFile()
		if err != nil {
			return fmt.Errorf("failed to get default PID file path: %w", err)
		}
		watchPIDFile = defaultPID
	}
	if watchLogFile == "" {
		defaultLog, err := getDefaultLogFile()
		if err != nil {
			return fmt.Errorf("failed to get default log file path: %w", err)
		}
		watchLogFile = defaultLog
	}

	if watchStop {
		if err := watcher.StopDaemon(watchPIDFile); err != nil {
			return err
		}
		fmt.Println("Watch daemon stopped.")
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	dir := watchDir
	if dir == "" {
		dir = cfg.Watch.Dir
	}
	if dir == "" {
		return fmt.Errorf("no watch directory: pass --dir or set watch.dir in the config file")
	}

	st, svc, err := openService()
	if err != nil {
		return err
	}
	defer st.Close()

	w, err := watcher.New(svc, dir, logger)
	if err != nil {
		return err
	}

	if watchDaemon {
		var extraArgs []string
		if dbPath != "" {
			extraArgs = append(extraArgs, "--db", dbPath)
		}
		if err := w.StartDaemon(watchPIDFile, watchLogFile, extraArgs...); err != nil {
			return err
		}
		fmt.Printf("Watch daemon started (PID file: %s, log: %s)\n", watchPIDFile, watchLogFile)
		return nil
	}

	if watchDaemonChild {
		return w.RunDaemon(watchPIDFile)
	}

	// Foreground mode
	if err := w.Start(); err != nil {
		return err
	}

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", dir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	return w.Stop()
}
