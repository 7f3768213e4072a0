// Package watcher ingests PDF files dropped into a watched directory.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/docsift/docsift/internal/core/domain"
	"github.com/docsift/docsift/internal/core/ports/driving"
	"github.com/docsift/docsift/internal/logger"
)

// DefaultSettleDelay is how long to wait after a file event before
// reading the file, so partially written PDFs are not ingested.
const DefaultSettleDelay = 500 * time.Millisecond

// Watcher monitors a directory and ingests newly created PDFs.
type Watcher struct {
	ingest driving.IngestService
	settle time.Duration
}

// New creates a directory watcher driving the given ingest service.
func New(ingest driving.IngestService) *Watcher {
	return &Watcher{ingest: ingest, settle: DefaultSettleDelay}
}

// Run watches dir until ctx is cancelled. Files are ingested one at a
// time, in event order.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("Watching %s for new PDF files", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
				continue
			}
			w.handle(ctx, event.Name)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handle waits for the file to settle, then ingests it. Failures are
// logged and swallowed so one bad file does not stop the watch loop.
func (w *Watcher) handle(ctx context.Context, path string) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(w.settle):
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Failed to read %s: %v", path, err)
		return
	}

	resp, err := w.ingest.IngestPDF(ctx, data, filepath.Base(path))
	switch {
	case err == nil:
		logger.Info("Ingested %s: %d chunks", path, resp.ChunksProcessed)
	case errors.Is(err, domain.ErrNoContent):
		logger.Warn("Skipped %s: no extractable text", path)
	default:
		logger.Warn("Failed to ingest %s: %v", path, err)
	}
}
