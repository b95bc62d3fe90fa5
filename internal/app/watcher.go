package app

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"servicegraph/pkg/logging"
)

const configChangeOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// watchConfig warns whenever the topology file at path changes while
// services are running. The graph is not rebuilt; a restart is needed to
// apply changes.
//
// The parent directory is watched rather than the file, since editors often
// replace the file on save. Failing to set up the watch only logs a warning.
func watchConfig(ctx context.Context, path string, onChange func(fsnotify.Event)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logging.Warn("ConfigWatcher", "Cannot watch %s for changes: %v", path, err)
		return nil
	}
	defer watcher.Close()

	target, err := filepath.Abs(path)
	if err != nil {
		target = filepath.Clean(path)
	}

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		logging.Warn("ConfigWatcher", "Cannot watch %s for changes: %v", path, err)
		return nil
	}
	logging.Debug("ConfigWatcher", "Watching %s for changes", target)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !sameFile(event.Name, target) || event.Op&configChangeOps == 0 {
				continue
			}
			logging.Warn("ConfigWatcher", "%s changed (%s); restart to apply the new configuration", path, event.Op)
			if onChange != nil {
				onChange(event)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error("ConfigWatcher", err, "Filesystem watcher error")
		}
	}
}

func sameFile(name, target string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == target
}
