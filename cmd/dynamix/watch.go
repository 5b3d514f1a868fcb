// Watch mode re-generates whenever the schema file changes.
package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/pthm/dynamix/lib/generator"
)

// debouncePeriod coalesces editor write bursts into one regeneration.
const debouncePeriod = 500 * time.Millisecond

// schemaWatcher re-runs the generator when the schema file changes.
type schemaWatcher struct {
	schemaPath string
	gen        *generator.Generator
	watcher    *fsnotify.Watcher
	log        *zap.Logger

	mu            sync.Mutex
	debounceTimer *time.Timer
}

func newSchemaWatcher(schemaPath string, gen *generator.Generator, log *zap.Logger) (*schemaWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory rather than the file itself: editors that
	// rename-and-replace on save would otherwise drop the watch.
	if err := watcher.Add(filepath.Dir(schemaPath)); err != nil {
		watcher.Close()
		return nil, err
	}

	return &schemaWatcher{
		schemaPath: schemaPath,
		gen:        gen,
		watcher:    watcher,
		log:        log,
	}, nil
}

func (w *schemaWatcher) start() {
	go w.watchLoop()
}

func (w *schemaWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only regenerate on Write or Create events for the schema file
			if event.Op&fsnotify.Write != fsnotify.Write && event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if filepath.Base(event.Name) != filepath.Base(w.schemaPath) {
				continue
			}

			w.log.Info("schema changed",
				zap.String("file", event.Name),
				zap.String("op", event.Op.String()))
			w.scheduleRegenerate()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// scheduleRegenerate debounces rapid file changes and triggers generation.
func (w *schemaWatcher) scheduleRegenerate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}

	w.debounceTimer = time.AfterFunc(debouncePeriod, func() {
		if err := w.gen.Generate(w.schemaPath); err != nil {
			w.log.Error("generate failed", zap.Error(err))
		}
	})
}

func (w *schemaWatcher) stop() error {
	return w.watcher.Close()
}

// watchSchema blocks until interrupted, re-generating on schema changes.
func watchSchema(schemaPath string, gen *generator.Generator) error {
	log, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer log.Sync()

	w, err := newSchemaWatcher(schemaPath, gen, log)
	if err != nil {
		return err
	}
	defer w.stop()

	w.start()
	log.Info("watching schema", zap.String("file", schemaPath))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info("shutting down")

	return nil
}
