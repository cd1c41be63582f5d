package project

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/osuushi/genart"
	"github.com/pkg/errors"
)

// command runs name in dir, with env added to the inherited environment and
// both output streams sent to out.
func (p *Project) command(ctx context.Context, env []string, name string, args ...string) error {
	return runCommand(ctx, p.Dir, env, p.Output, name, args...)
}

func runCommand(ctx context.Context, dir string, env []string, out io.Writer, name string, args ...string) error {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Env = append(os.Environ(), env...)
	c.Stdout = out
	c.Stderr = out
	genart.Logger().Debug("exec", "dir", dir, "cmd", name, "args", args)
	if err := c.Run(); err != nil {
		return errors.Wrapf(err, "command `%s` failed", strings.Join(append([]string{name}, args...), " "))
	}
	return nil
}

func (p *Project) git(ctx context.Context, args ...string) error {
	return p.command(ctx, nil, "git", args...)
}

// anyStaged reports whether the index differs from HEAD.
func (p *Project) anyStaged(ctx context.Context) (bool, error) {
	c := exec.CommandContext(ctx, "git", "diff", "--cached", "--quiet")
	c.Dir = p.Dir
	err := c.Run()
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, errors.Wrap(err, "failed to run `git diff --cached`")
}

func (p *Project) isRepo() bool {
	_, err := os.Stat(p.path(".git"))
	return err == nil
}
