package skill

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/hb-chen/safeskill/pkg/logger"
)

// WatchConfig reloads the skills config at path into router each time the
// file is written or replaced. It blocks until ctx is done. A file that fails
// to parse leaves the previous config in place.
func WatchConfig(ctx context.Context, path string, router *Router) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of writing it
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	logger.Infof("Watching skills config %s", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			config, err := LoadConfig(path)
			if err != nil {
				logger.Warnf("Ignoring skills config change: %v", err)
				continue
			}
			router.SetConfig(config)
			logger.Infof("Reloaded skills config %s", path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("Skills config watcher error: %v", err)
		}
	}
}
