package specs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports changes to scene spec files and their easing scripts so a
// running game can reapply them. Duplicate notifications inside the debounce
// window collapse into one.
type Watcher struct {
	fs      *fsnotify.Watcher
	exts    map[string]bool
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// Watch observes the given directories for spec and script edits. With no
// extensions given, ".yaml", ".yml" and ".tengo" files are reported.
func Watch(dirs []string, exts ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	if len(exts) == 0 {
		exts = []string{".yaml", ".yml", ".tengo"}
	}
	extSet := make(map[string]bool, len(exts))
	for _, ext := range exts {
		extSet[strings.ToLower(ext)] = true
	}

	w := &Watcher{
		fs:      fs,
		exts:    extSet,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !w.exts[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[event.Name] = now
			w.Events <- event.Name
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.Errors <- err
		case <-w.closeCh:
			return
		}
	}
}
