// Package watcher ingests strings dropped into a directory.
//
// Each file placed in the watched directory is treated as a batch of values,
// one per line. The watcher analyzes and stores every non-empty line, then
// removes the file. Ingestion is idempotent, so a file delivered twice (or a
// create event followed by a write event) does no harm.
package watcher

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"stringd/internal/logging"
	"stringd/internal/service"
)

// Watcher ingests string values from files dropped into a directory.
type Watcher struct {
	svc    *service.Service
	dir    string
	logger *logging.Logger

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a new Watcher for the given drop directory.
func New(svc *service.Service, dir string, logger *logging.Logger) (*Watcher, error) {
	if svc == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if dir == "" {
		return nil, fmt.Errorf("watch directory cannot be empty")
	}
	return &Watcher{
		svc:    svc,
		dir:    dir,
		logger: logger,
		stopCh: make(chan struct{}),
	}, nil
}

// Start begins watching the drop directory. Files already present are
// ingested immediately on startup.
func (w *Watcher) Start() error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create watch directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.fsw = fsw

	w.logger.Info("Watching ingest directory", map[string]interface{}{
		"dir": w.dir,
	})

	w.sweep()

	w.wg.Add(1)
	go w.run()

	return nil
}

// Stop halts the watcher and does a final sweep of the directory.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	w.wg.Wait()

	if w.fsw != nil {
		if err := w.fsw.Close(); err != nil {
			return fmt.Errorf("failed to close filesystem watcher: %w", err)
		}
	}
	return nil
}

// run dispatches filesystem events until the stop signal is received.
func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.ingestFile(event.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("Filesystem watcher error", map[string]interface{}{
				"error": err.Error(),
			})
		case <-w.stopCh:
			w.sweep()
			return
		}
	}
}

// sweep ingests every file currently in the drop directory.
func (w *Watcher) sweep() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Error("Failed to read ingest directory", map[string]interface{}{
			"dir":   w.dir,
			"error": err.Error(),
		})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		w.ingestFile(filepath.Join(w.dir, entry.Name()))
	}
}

// ingestFile stores every non-empty line of the file, then removes it.
// Hidden files and files that disappeared between the event and the read are
// skipped silently.
func (w *Watcher) ingestFile(path string) {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			w.logger.Error("Failed to open ingest file", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
		return
	}

	var stored, skipped int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, _, err := w.svc.AnalyzeAndStore(line); err != nil {
			skipped++
			w.logger.Warn("Failed to ingest line", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			continue
		}
		stored++
	}
	scanErr := scanner.Err()
	f.Close()

	if scanErr != nil {
		w.logger.Error("Failed to read ingest file", map[string]interface{}{
			"path":  path,
			"error": scanErr.Error(),
		})
		return
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		w.logger.Error("Failed to remove ingested file", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return
	}

	w.logger.Info("Ingested file", map[string]interface{}{
		"path":    path,
		"stored":  stored,
		"skipped": skipped,
	})
}
