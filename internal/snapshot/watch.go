package snapshot

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors path and reloads the store each time the file is written or
// replaced. It runs until ctx is cancelled, then returns nil.
//
// The parent directory is watched, so saves that rename a new file over path
// keep being seen. A failed reload is logged by [Store.Reload] and the
// previous snapshot stays current; Watch keeps going.
func (s *Store) Watch(ctx context.Context, path string) error {
	path = filepath.Clean(path)
	if _, err := os.Stat(path); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	s.logger.Info().Str("path", path).Msg("watching config file")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			// A rename onto path shows up as Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			changed, err := s.Reload()
			s.logger.Debug().
				Str("path", path).
				Stringer("op", event.Op).
				Bool("changed", changed).
				Bool("failed", err != nil).
				Msg("config file event handled")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error().Err(err).Msg("config watcher error")
		}
	}
}
