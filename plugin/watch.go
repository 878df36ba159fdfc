package plugin

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"autowrap/host"
)

// Watcher reports which buffers' backing files changed on disk so the caller
// can re-run the heuristic from its own event loop. All decision work stays
// on the caller's side; the watcher goroutine only translates fs events into
// buffer ids.
type Watcher struct {
	fw      *fsnotify.Watcher
	changes chan host.BufferID
	done    chan struct{}
}

// WatchFiles watches the given file paths, keyed to the buffers they back.
func WatchFiles(paths map[string]host.BufferID) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	byPath := make(map[string]host.BufferID, len(paths))
	for path, id := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		byPath[abs] = id
		if err := fw.Add(abs); err != nil {
			fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fw:      fw,
		changes: make(chan host.BufferID),
		done:    make(chan struct{}),
	}
	go w.loop(byPath)
	return w, nil
}

func (w *Watcher) loop(byPath map[string]host.BufferID) {
	defer close(w.changes)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			id, ok := byPath[ev.Name]
			if !ok {
				continue
			}
			select {
			case w.changes <- id:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}

// Changes yields buffer ids whose files changed. The channel closes when the
// watcher is closed.
func (w *Watcher) Changes() <-chan host.BufferID { return w.changes }

func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}
