// Package watch перегенерирует ini, когда в папке Data появляются,
// меняются или исчезают архивы модов.
//
// Пачка событий (распаковка мода пишет файл кусками) склеивается debounce-ом,
// а частота перегенераций ограничена rate.Limiter.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/ilkoid/customini/pkg/classifier"
	"github.com/ilkoid/customini/pkg/utils"
)

// Handler вызывается после каждой пачки значимых событий.
type Handler func(ctx context.Context) error

// Options - настройки Watcher.
type Options struct {
	Dir         string
	Eligible    classifier.Predicate // nil - любые файлы
	Debounce    time.Duration        // По умолчанию 500ms
	MinInterval time.Duration        // По умолчанию 2s
}

// Stats - счётчики активности.
type Stats struct {
	Events   int // Значимые события
	Runs     int // Вызовы Handler
	Failures int // Handler вернул ошибку
}

// Watcher следит за одной папкой (без вложенных).
type Watcher struct {
	opts    Options
	handler Handler
	fs      *fsnotify.Watcher
	limiter *rate.Limiter

	mu    sync.Mutex
	stats Stats
}

// New создаёт Watcher и подписывается на папку.
func New(opts Options, handler Handler) (*Watcher, error) {
	if handler == nil {
		return nil, fmt.Errorf("watch: handler is required")
	}
	if opts.Eligible == nil {
		opts.Eligible = classifier.AcceptAll
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}
	if opts.MinInterval <= 0 {
		opts.MinInterval = 2 * time.Second
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	if err := fsw.Add(opts.Dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch: add %s: %w", opts.Dir, err)
	}

	return &Watcher{
		opts:    opts,
		handler: handler,
		fs:      fsw,
		limiter: rate.NewLimiter(rate.Every(opts.MinInterval), 1),
	}, nil
}

// Stats возвращает копию счётчиков.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Relevant сообщает, влияет ли событие на содержимое ini.
func (w *Watcher) Relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return w.opts.Eligible(filepath.Base(event.Name))
}

// Run обрабатывает события до отмены ctx. Закрывает fsnotify watcher при выходе.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.Relevant(event) {
				continue
			}
			utils.Debug("Watch event", "op", event.Op.String(), "name", event.Name)
			w.mu.Lock()
			w.stats.Events++
			w.mu.Unlock()
			timer.Reset(w.opts.Debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			utils.Error("Watch error", "error", err)

		case <-timer.C:
			if err := w.limiter.Wait(ctx); err != nil {
				// Контекст отменён во время ожидания
				return nil
			}
			w.fire(ctx)
		}
	}
}

func (w *Watcher) fire(ctx context.Context) {
	err := w.handler(ctx)

	w.mu.Lock()
	w.stats.Runs++
	if err != nil {
		w.stats.Failures++
	}
	w.mu.Unlock()

	if err != nil {
		utils.Error("Regeneration failed", "error", err)
	}
}
