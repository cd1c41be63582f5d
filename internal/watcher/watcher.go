// Package watcher re-runs a genart project whenever its sources change.
package watcher

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gen2brain/beeep"
	"github.com/osuushi/genart"
	"github.com/osuushi/genart/internal/project"
	"github.com/pkg/errors"
)

// How long to wait for a burst of file events to settle before rebuilding.
const DefaultSettle = 100 * time.Millisecond

// Paths under the project root that runs write to, and so never trigger one.
var ignoredRoots = []string{".git", project.ImagesDir, project.BuildDir, project.UserConstsFile}

var notify = beeep.Notify

type Runner interface {
	Run(ctx context.Context, opts project.RunOptions) (*project.Result, error)
}

type Watcher struct {
	// Project root.
	Dir    string
	Runner Runner
	Output io.Writer
	// Options for every run. OnlyIfChanged is set for runs caused by file
	// changes and cleared for explicit triggers.
	Options project.RunOptions
	// Extra environment for each run, consulted just before it starts.
	Env func() []string
	// Show a desktop notification when a run fails.
	Notify bool
	Settle time.Duration

	OnStart  func()
	OnFinish func(result *project.Result, err error)

	trigger chan struct{}
}

// ForProject watches p, running it with opts.
func ForProject(p *project.Project, opts project.RunOptions) *Watcher {
	return &Watcher{
		Dir:     p.Dir,
		Runner:  p,
		Output:  p.Output,
		Options: opts,
		Notify:  p.Config.Notify,
		Settle:  DefaultSettle,
		trigger: make(chan struct{}, 1),
	}
}

// Trigger asks for a run even if no file changed. Triggers arriving while a
// run is pending coalesce.
func (w *Watcher) Trigger() {
	w.init()
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

func (w *Watcher) init() {
	if w.trigger == nil {
		w.trigger = make(chan struct{}, 1)
	}
}

// Watch blocks, re-running the project after each burst of changes, until ctx
// is done. Failed runs are reported and watching continues.
func (w *Watcher) Watch(ctx context.Context) error {
	w.init()
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer fsw.Close()

	if err := w.addRecursive(fsw, w.Dir); err != nil {
		return errors.Wrapf(err, "failed to watch %s", w.Dir)
	}
	fmt.Fprintf(w.Output, "Watching genart project for changes: %s\n", w.Dir)

	for {
		var forced bool
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(fsw, event) {
				continue
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			genart.Logger().Warn("file watcher error", "error", err)
			continue
		case <-w.trigger:
			forced = true
		}

		if w.settle(ctx, fsw) {
			forced = true
		}
		if ctx.Err() != nil {
			return nil
		}
		w.rerun(ctx, forced)
		// Drop events caused by the run itself.
		w.drain(fsw)
	}
}

// settle waits until no relevant event has arrived for the settle period. It
// reports whether a trigger arrived meanwhile.
func (w *Watcher) settle(ctx context.Context, fsw *fsnotify.Watcher) (triggered bool) {
	timer := time.NewTimer(w.Settle)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return triggered
		case <-timer.C:
			return triggered
		case event, ok := <-fsw.Events:
			if !ok || !w.relevant(fsw, event) {
				continue
			}
		case <-fsw.Errors:
			continue
		case <-w.trigger:
			triggered = true
		}
		timer.Reset(w.Settle)
	}
}

func (w *Watcher) drain(fsw *fsnotify.Watcher) {
	for {
		select {
		case <-fsw.Events:
		case <-fsw.Errors:
		default:
			return
		}
	}
}

// relevant filters out events under ignored paths, and starts watching newly
// created directories.
func (w *Watcher) relevant(fsw *fsnotify.Watcher, event fsnotify.Event) bool {
	if w.ignored(event.Name) {
		return false
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(fsw, event.Name); err != nil {
				genart.Logger().Warn("failed to watch new directory", "dir", event.Name, "error", err)
			}
		}
	}
	genart.Logger().Debug("file changed", "path", event.Name, "op", event.Op.String())
	return true
}

func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.Dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return true
	}
	root, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	return slices.Contains(ignoredRoots, root)
}

// addRecursive watches dir and every directory below it. fsnotify watches
// are not recursive.
func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.Dir && w.ignored(path) {
			return filepath.SkipDir
		}
		return errors.WithStack(fsw.Add(path))
	})
}

func (w *Watcher) rerun(ctx context.Context, forced bool) {
	if w.OnStart != nil {
		w.OnStart()
	}
	fmt.Fprintf(w.Output, "\n%s\n\n", strings.Repeat("▔", 72))

	opts := w.Options
	opts.OnlyIfChanged = !forced
	if w.Env != nil {
		opts.Env = append(slices.Clone(opts.Env), w.Env()...)
	}
	result, err := w.Runner.Run(ctx, opts)
	if err != nil {
		fmt.Fprintf(w.Output, "Warning: %v\n", err)
		if w.Notify {
			if notifyErr := notify("genart run failed", err.Error(), ""); notifyErr != nil {
				genart.Logger().Warn("failed to show notification", "error", notifyErr)
			}
		}
	}
	if w.OnFinish != nil {
		w.OnFinish(result, err)
	}
}
