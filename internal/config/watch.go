package config

import (
	"path/filepath"
	"time"

	fsnotify "github.com/fsnotify/fsnotify"
)

// Watch observes the settings file and calls onChange with freshly loaded
// settings whenever it is written or replaced. The returned stop func
// releases the watcher. Watching the directory rather than the file keeps
// the watch alive across editors that save via rename.
func Watch(onChange func(Settings)) (stop func(), err error) {
	p, err := SettingsPath()
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(p)); err != nil {
		_ = w.Close()
		return nil, err
	}
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != filepath.Base(p) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				// let the writer finish before reading
				time.Sleep(120 * time.Millisecond)
				if s, err := Load(); err == nil {
					onChange(s)
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return func() { _ = w.Close() }, nil
}
