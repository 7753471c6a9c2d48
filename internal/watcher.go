package internal

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// WatchEvent is a filesystem event for a media file under watch.
type WatchEvent struct {
	Path string
}

// Watcher wraps fsnotify with media-file filtering, so newly arrived
// files can be analyzed as they land.
type Watcher struct {
	watcher *fsnotify.Watcher
	cfg     *Config
	events  chan WatchEvent
	errors  chan error
	done    chan struct{}
}

// NewWatcher watches folder and its subdirectories for new media files.
func NewWatcher(folder string, cfg *Config) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fsWatcher,
		cfg:     cfg,
		events:  make(chan WatchEvent, 100),
		errors:  make(chan error, 10),
		done:    make(chan struct{}),
	}

	if err := w.addRecursive(folder); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	go w.processEvents()

	return w, nil
}

// addRecursive adds a directory and all its subdirectories to the watcher
func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// processEvents filters raw fsnotify events down to media-file arrivals.
func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if ClassifyKind(event.Name, w.cfg) == KindUnsupported {
				continue
			}

			select {
			case w.events <- WatchEvent{Path: event.Name}:
			default:
				logrus.WithField("file", event.Name).Warn("watch event dropped, channel full")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}

		case <-w.done:
			return
		}
	}
}

// Events returns the channel of filtered watch events
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Errors returns the channel of watcher errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and cleans up resources
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
