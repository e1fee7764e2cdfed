// Package dropzone provides the dropped-file watcher adapter: the terminal
// analog of drag-and-drop. Files appearing in the watched directory become
// selection candidates. Clean Architecture: Adapter implementing
// ports.DropzoneWatcher.
package dropzone

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"docchat/internal/domain/ports"
)

// FSNotifyWatcher implements ports.DropzoneWatcher using fsnotify.
type FSNotifyWatcher struct {
	watcher    *fsnotify.Watcher
	extensions []string // candidate extensions, e.g. ".pdf", ".txt"
}

// NewFSNotifyWatcher creates a dropzone watcher. Extension filtering is a
// convenience only; the upload gate remains the authority on eligibility.
func NewFSNotifyWatcher(extensions []string) (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if len(extensions) == 0 {
		extensions = []string{".pdf", ".txt"}
	}

	return &FSNotifyWatcher{
		watcher:    w,
		extensions: extensions,
	}, nil
}

// Watch starts monitoring the directory and emits a FileEvent for each
// candidate file created or written there.
func (w *FSNotifyWatcher) Watch(ctx context.Context, dir string) (<-chan ports.FileEvent, error) {
	if err := w.watcher.Add(dir); err != nil {
		return nil, err
	}

	events := make(chan ports.FileEvent, 16)

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.isCandidate(event.Name) {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}

				select {
				case events <- ports.FileEvent{Path: event.Name}:
				case <-ctx.Done():
					return
				}
			case _, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return events, nil
}

// Stop stops the watcher.
func (w *FSNotifyWatcher) Stop() error {
	return w.watcher.Close()
}

// isCandidate checks whether the file carries a watched extension.
func (w *FSNotifyWatcher) isCandidate(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.extensions {
		if ext == e {
			return true
		}
	}
	return false
}
