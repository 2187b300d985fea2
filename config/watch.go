package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"prospection-agent/logger"
)

// Watch reloads path whenever it changes and hands the new Config to
// onChange. The parent directory is watched so saves that rename a temp file
// over path are seen too. A reload that fails to parse or validate is logged
// and skipped, so the previous config stays active. Watch returns when ctx is
// cancelled.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	log := logger.Named("config")
	log.Info().Str("path", target).Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			// a rename over path arrives as Create
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(target)
			if err != nil {
				log.Error().Err(err).Str("path", target).Msg("reload failed, keeping previous config")
				continue
			}

			log.Info().Str("path", target).Msg("reloaded")
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")
		}
	}
}
