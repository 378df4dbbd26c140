package compile

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchSet decides which file system events should trigger regeneration.
type watchSet struct {
	// files named on command line, their directories are watched
	files map[string]struct{}
	// roots of watched directory trees
	roots []string
	exts  []string
	out   string
}

func (w *watchSet) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod || ev.Name == w.out || w.temporary(ev.Name) {
		return false
	}
	if _, ok := w.files[ev.Name]; ok {
		return true
	}
	for _, root := range w.roots {
		if ev.Name != root && !strings.HasPrefix(ev.Name, root+string(filepath.Separator)) {
			continue
		}
		// removed or renamed directories cannot be checked anymore, assume
		// anything without extension was one
		return hasExtension(ev.Name, w.exts) || len(filepath.Ext(ev.Name)) == 0
	}
	return false
}

// temporary reports files job.write creates next to the output before
// renaming them into place.
func (w *watchSet) temporary(name string) bool {
	if len(w.out) == 0 || filepath.Dir(name) != filepath.Dir(w.out) {
		return false
	}
	return strings.HasPrefix(filepath.Base(name), "."+filepath.Base(w.out)+"-")
}

// addTree watches directory and all its subdirectories.
func addTree(watcher *fsnotify.Watcher, root string, log *zap.Logger) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("unable to watch '%s': %w", path, err)
		}
		return nil
	})
}

func (j *job) watchSet(watcher *fsnotify.Watcher) (*watchSet, error) {
	ws := &watchSet{files: make(map[string]struct{}), exts: j.conf.Extensions, out: j.out}
	for _, arg := range j.sources {
		src, fi, err := locate(arg)
		if err != nil {
			return nil, err
		}
		if fi.IsDir() {
			ws.roots = append(ws.roots, src.path)
			if err := addTree(watcher, src.path, j.log); err != nil {
				return nil, err
			}
			continue
		}
		// editors often replace files instead of writing them in place
		ws.files[src.path] = struct{}{}
		if err := watcher.Add(filepath.Dir(src.path)); err != nil {
			return nil, fmt.Errorf("unable to watch '%s': %w", filepath.Dir(src.path), err)
		}
	}
	return ws, nil
}

// watch generates stylesheet and then regenerates it every time sources
// change until context is canceled. Events are coalesced: generation starts
// after WatchDelay passes without new changes. Failed runs are logged and
// watching continues.
func (j *job) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create file watcher: %w", err)
	}
	defer watcher.Close()

	ws, err := j.watchSet(watcher)
	if err != nil {
		return err
	}

	if err := j.run(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		j.log.Error("Generation failed", zap.Error(err))
	}
	j.log.Info("Watching for changes", zap.Strings("sources", j.sources), zap.Duration("delay", j.conf.WatchDelay))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			j.log.Info("Watching stopped")
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ws.relevant(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := addTree(watcher, ev.Name, j.log); err != nil {
						j.log.Warn("New directory is not watched", zap.Error(err))
					}
				}
			}
			j.log.Debug("Change detected", zap.Stringer("event", ev))
			if timer == nil {
				timer = time.NewTimer(j.conf.WatchDelay)
			} else {
				timer.Reset(j.conf.WatchDelay)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			j.log.Warn("File watcher problem", zap.Error(err))

		case <-fire:
			fire = nil
			if err := j.run(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				j.log.Error("Generation failed", zap.Error(err))
			}
		}
	}
}
