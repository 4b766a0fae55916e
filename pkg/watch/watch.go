// Package watch re-runs a callback when an input file changes on disk.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/fsnotify.v1"
)

// DefaultDebounce is the quiet period after the last event before the
// callback runs.
const DefaultDebounce = 500 * time.Millisecond

// Options configures [File].
type Options struct {
	// Debounce is the quiet period before the callback runs. Zero uses
	// DefaultDebounce.
	Debounce time.Duration

	// Logger receives watcher errors and callback failures.
	Logger *slog.Logger

	// Trigger forces a run on each receive, even if the file is unchanged.
	Trigger <-chan struct{}
}

// File calls onChange once for the current contents of path and again each
// time the contents change, until ctx is done. Writes that leave the bytes
// unchanged are ignored. The parent directory is watched so editors that
// replace the file on save are followed. Errors returned by onChange are
// logged and do not stop the watch. A receive on opts.Trigger runs
// onChange again without a file change.
func File(ctx context.Context, path string, opts Options, onChange func(context.Context) error) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &fileWatcher{path: abs, opts: opts, onChange: onChange}
	w.run(ctx)

	timer := time.NewTimer(opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			opts.Logger.Debug("file event", slog.String("path", abs), slog.String("op", event.Op.String()))
			timer.Reset(opts.Debounce)

		case <-timer.C:
			w.run(ctx)

		case <-opts.Trigger:
			w.lastHash = ""
			w.run(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			opts.Logger.Warn("watcher error", slog.Any("error", err))
		}
	}
}

type fileWatcher struct {
	path     string
	opts     Options
	onChange func(context.Context) error
	lastHash string
}

// run calls onChange if the file hash differs from the last run.
func (w *fileWatcher) run(ctx context.Context) {
	hash, err := fileHash(w.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			w.opts.Logger.Debug("file not present", slog.String("path", w.path))
			return
		}
		w.opts.Logger.Warn("hashing file", slog.String("path", w.path), slog.Any("error", err))
		return
	}
	if hash == w.lastHash {
		return
	}
	w.lastHash = hash

	if err := w.onChange(ctx); err != nil {
		w.opts.Logger.Error("processing change", slog.String("path", w.path), slog.Any("error", err))
	}
}

func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
