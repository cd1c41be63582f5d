// Package project manages genart projects: directories holding an art program
// (a Go main package calling genart.Generate), an images directory of
// everything it has produced, and usually a git repository recording the
// source that produced each image.
package project

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/osuushi/genart"
	"github.com/pkg/errors"
)

const (
	ImagesDir = "images"
	// Hard link to the most recent image.
	LatestImage = "latest.svg"
	// Build output. Kept out of git by the project template.
	BuildDir = ".genart"
	// Written by the live page so a set of user consts can be restored with
	// `source user_consts.sh`.
	UserConstsFile = "user_consts.sh"
)

type Project struct {
	// Absolute path of the project root.
	Dir    string
	Config Config
	// Receives the output of every command run for the project.
	Output io.Writer

	now func() time.Time
}

// Open loads the project rooted at dir.
func Open(dir string) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open project")
	}
	if !info.IsDir() {
		return nil, errors.Errorf("project %s is not a directory", abs)
	}
	cfg, err := LoadConfig(abs)
	if err != nil {
		return nil, err
	}
	return &Project{Dir: abs, Config: cfg, Output: os.Stderr, now: time.Now}, nil
}

func (p *Project) path(elem ...string) string {
	return filepath.Join(append([]string{p.Dir}, elem...)...)
}

func (p *Project) ImagesDir() string {
	return p.path(ImagesDir)
}

func (p *Project) LatestImage() string {
	return p.path(ImagesDir, LatestImage)
}

func (p *Project) binary() string {
	return p.path(BuildDir, "art")
}

type RunOptions struct {
	// Passed as arguments to the art program.
	Extra []string
	// KEY=VALUE pairs added to the art program's environment.
	Env []string
	// Also render a PNG next to the SVG.
	Preview bool
	// Skip running when the build changed nothing tracked by git. Only applies
	// to projects that commit.
	OnlyIfChanged bool
}

type Result struct {
	// The SVG written. Empty if the run was skipped.
	Image string
	// The PNG written, when a preview was requested.
	Preview   string
	Skipped   bool
	Committed bool
}

// Run builds the art program and runs it to produce a new image named for the
// current time. The image is then linked as images/latest.svg and, if the
// project commits, the sources and image are committed with the timestamp as
// the message.
func (p *Project) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	stamp := Timestamp(p.now())
	if err := os.MkdirAll(p.ImagesDir(), 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create images directory")
	}
	image := filepath.Join(p.ImagesDir(), stamp+".svg")

	if err := p.build(ctx); err != nil {
		return nil, err
	}

	commit := p.Config.Commit && p.isRepo()
	if commit && opts.OnlyIfChanged {
		if err := p.git(ctx, "add", "."); err != nil {
			return nil, err
		}
		staged, err := p.anyStaged(ctx)
		if err != nil {
			return nil, err
		}
		if !staged {
			fmt.Fprintln(p.Output, "Nothing changed since the last run")
			return &Result{Skipped: true}, nil
		}
	}

	if err := p.command(ctx, p.runEnv(image, opts), p.binary(), opts.Extra...); err != nil {
		return nil, errors.Wrap(err, "art program failed")
	}

	result := &Result{Image: image}
	if opts.Preview {
		result.Preview = genart.PreviewFileName(image)
	}

	if err := p.linkLatest(image); err != nil {
		return nil, err
	}

	if commit {
		committed, err := p.commit(ctx, stamp)
		if err != nil {
			return nil, err
		}
		result.Committed = committed
	}
	return result, nil
}

func (p *Project) build(ctx context.Context) error {
	if err := p.command(ctx, nil, "go", "build", "-o", p.binary(), "."); err != nil {
		return errors.Wrap(err, "build failed")
	}
	return nil
}

func (p *Project) runEnv(image string, opts RunOptions) []string {
	env := []string{genart.EnvFileName + "=" + image}
	if p.Config.Seed != nil {
		env = append(env, genart.EnvSeed+"="+strconv.FormatUint(*p.Config.Seed, 10))
	}
	if opts.Preview {
		env = append(env, genart.EnvPreview+"=1")
	}
	return append(env, opts.Env...)
}

// linkLatest replaces images/latest.svg with a hard link to image.
func (p *Project) linkLatest(image string) error {
	latest := p.LatestImage()
	if err := os.Remove(latest); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "failed to remove %s", latest)
	}
	if err := os.Link(image, latest); err != nil {
		return errors.Wrapf(err, "failed to link %s to %s", image, latest)
	}
	fmt.Fprintf(p.Output, "\nLinked %s to %s\n\n", image, latest)
	return nil
}

// commit stages everything and commits, if anything is staged.
func (p *Project) commit(ctx context.Context, message string) (bool, error) {
	if err := p.git(ctx, "add", "."); err != nil {
		return false, err
	}
	staged, err := p.anyStaged(ctx)
	if err != nil || !staged {
		return false, err
	}
	if err := p.git(ctx, "commit", "--quiet", "-m", message); err != nil {
		return false, err
	}
	return true, nil
}

// Timestamp names an image for the time it was made, to the microsecond, in
// UTC: 2006-01-02-15-04-05-000000. These sort chronologically.
func Timestamp(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s-%06d", t.Format("2006-01-02-15-04-05"), t.Nanosecond()/1000)
}
