package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceWindow drops repeat events for the same file inside this window;
// editors tend to write a file more than once per save.
const DebounceWindow = 100 * time.Millisecond

// Kind says what sort of content file changed.
type Kind int

const (
	KindPrefab Kind = iota
	KindLevel
)

func (k Kind) String() string {
	if k == KindLevel {
		return "level"
	}
	return "prefab"
}

// Change is a debounced notification that a watched content file changed.
type Change struct {
	Path string
	Kind Kind
}

// Name is the file name the loaders understand, e.g. "player.yaml".
func (c Change) Name() string {
	return filepath.Base(c.Path)
}

type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	var d debouncer
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			kind, ok := classify(event.Name)
			if !ok || !d.allow(event.Name, time.Now()) {
				continue
			}
			select {
			case w.Events <- Change{Path: event.Name, Kind: kind}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

type debouncer struct {
	last map[string]time.Time
}

func (d *debouncer) allow(name string, now time.Time) bool {
	if d.last == nil {
		d.last = make(map[string]time.Time)
	}
	if t, ok := d.last[name]; ok && now.Sub(t) < DebounceWindow {
		return false
	}
	d.last[name] = now
	return true
}

func classify(path string) (Kind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return KindPrefab, true
	case ".json":
		return KindLevel, true
	default:
		return 0, false
	}
}
