// Package watcher reloads the explorer when the selected directory changes on disk.
package watcher

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pokerjest/animateRenamer/internal/event"
	"github.com/pokerjest/animateRenamer/internal/parser"
	log "github.com/sirupsen/logrus"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher 监视当前目录 (non-recursive) and publishes a debounced reload event.
type Watcher struct {
	fw       *fsnotify.Watcher
	bus      event.Bus
	debounce time.Duration

	mu    sync.Mutex
	dir   string
	timer *time.Timer
	subID string
	stop  chan struct{}
}

func New(bus event.Bus, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{fw: fw, bus: bus, debounce: debounce, stop: make(chan struct{})}, nil
}

// Start watches dir and follows directory_changed events from then on.
func (w *Watcher) Start(dir string) {
	go w.eventLoop()
	if err := w.Watch(dir); err != nil {
		log.Warnf("Watcher: cannot watch %s: %v", dir, err)
	}
	w.subID = w.bus.Subscribe(event.EventDirectoryChanged, func(e event.Event) {
		if dir, ok := e.Payload.(string); ok {
			if err := w.Watch(dir); err != nil {
				log.Warnf("Watcher: cannot watch %s: %v", dir, err)
			}
		}
	})
	log.Info("Watcher: filesystem watcher started")
}

// Watch replaces the watched directory.
func (w *Watcher) Watch(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if dir == w.dir {
		return nil
	}
	if w.dir != "" {
		_ = w.fw.Remove(w.dir)
	}
	w.dir = ""
	if err := w.fw.Add(dir); err != nil {
		return err
	}
	w.dir = dir
	log.Debugf("Watcher: watching %s", dir)
	return nil
}

func (w *Watcher) Stop() {
	if w.subID != "" {
		w.bus.Unsubscribe(event.EventDirectoryChanged, w.subID)
	}
	close(w.stop)
	w.fw.Close()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Warnf("Watcher: %v", err)
		case <-w.stop:
			return
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, ".tmp") || strings.HasSuffix(base, ".part") {
		return false
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	// directories have no extension; video files are matched by extension
	return filepath.Ext(base) == "" || parser.IsVideoFile(base)
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !relevant(ev) {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	dir := w.dir
	w.timer = time.AfterFunc(w.debounce, func() {
		log.Debugf("Watcher: %s changed, reloading", dir)
		event.Publish(w.bus, event.EventReload, dir)
	})
}
