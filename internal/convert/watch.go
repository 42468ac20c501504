package convert

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/qdoc2rst/internal/foundation/errors"
	"git.home.luguber.info/inful/qdoc2rst/internal/logfields"
)

// RunFunc receives the outcome of every run started by Watch.
type RunFunc func(report *Report, err error)

// Watch runs the conversion once and then again whenever HTML files in the
// input directory change, debouncing bursts of events. It returns nil when
// ctx is canceled.
func (c *Converter) Watch(ctx context.Context, onRun RunFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.RuntimeError("failed to create file watcher").WithCause(err).Build()
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	dir := c.cfg.Input.Directory
	if err := watcher.Add(dir); err != nil {
		return errors.FileSystemError("failed to watch input directory").WithCause(err).
			WithContext("path", dir).
			Build()
	}

	debounce := c.cfg.Watch.DebounceDuration()
	slog.Info("Watching input directory", logfields.Path(dir), logfields.Duration(debounce))

	onRun(c.Run(ctx))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			slog.Debug("Input change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			onRun(c.Run(ctx))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("File watcher error", logfields.Error(err))
		}
	}
}

// relevant reports whether event touches an HTML page's content or presence.
func relevant(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != htmlExt {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
