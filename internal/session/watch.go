package session

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last file event before a
// watched scene is reloaded.
const DefaultDebounce = 200 * time.Millisecond

// Watch reloads the current scene file whenever it changes on disk and
// applies every value received on settings. After each reload or settings
// change it calls onChange with the result. It blocks until ctx is done;
// settings may be nil.
//
// The scene's directory is watched rather than the file itself so editors
// that save by renaming a temporary file are still seen. onChange runs on
// the watching goroutine; the session must not be used concurrently.
func (s *Session) Watch(ctx context.Context, debounce time.Duration, settings <-chan Settings, onChange func(error)) error {
	if s.path == "" {
		return fmt.Errorf("session: watch: no scene loaded")
	}
	target, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("session: watch %s: %w", s.path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("session: watch %s: %w", s.path, err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("session: watch %s: %w", s.path, err)
	}
	s.logger.Infof("watching %s", s.path)

	var reload <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || name != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				reload = time.After(debounce)
			}

		case st, ok := <-settings:
			if !ok {
				settings = nil
				continue
			}
			s.SettingsChanged(st)
			s.logger.Infof("settings changed: %d×%d", st.Param1, st.Param2)
			if onChange != nil {
				onChange(nil)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warningf("watch %s: %v", s.path, err)

		case <-reload:
			reload = nil
			err := s.SceneChanged(s.path)
			if onChange != nil {
				onChange(err)
			}
		}
	}
}
