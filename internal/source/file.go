package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/daburgger/daburgger/internal/burger"
)

// FileSource serves the list from a local JSON document, the legacy data
// path. The file is re-read when the watcher reports a change, so edits
// show up without a restart.
type FileSource struct {
	path string

	mu      sync.RWMutex
	records []burger.Burger

	watcher *fsnotify.Watcher
}

func NewFileSource(path string, logger *slog.Logger) (*FileSource, error) {
	// fsnotify reports cleaned event names; keep the path in the same form
	// so the comparison below works for configured paths like ./data.json.
	path = filepath.Clean(path)
	s := &FileSource{path: path}
	if err := s.reload(); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors replace files on save, which drops
	// watches on the file itself.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	s.watcher = w

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Name != path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := s.reload(); err != nil {
					logger.Warn("data file reload failed", "path", path, "error", err)
				} else {
					logger.Info("data file reloaded", "path", path)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("data file watcher error", "error", err)
			}
		}
	}()

	return s, nil
}

func (s *FileSource) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.path, err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	records := burger.Normalize(v)

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()
	return nil
}

func (s *FileSource) List(ctx context.Context) ([]burger.Burger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]burger.Burger, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *FileSource) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
