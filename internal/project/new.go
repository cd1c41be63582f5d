package project

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

//go:embed template/*.tmpl
var templateFS embed.FS

type NewOptions struct {
	// Directory to create. A random name is made up if empty.
	Name string
	// git URL of a template project to clone. Empty uses the built-in template.
	Template string
	Output   io.Writer
}

type templateData struct {
	Name   string
	Module string
	Port   int
}

var nonModuleChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// New creates a project. With a template URL the template is cloned and its
// origin removed; otherwise the built-in template is written, its module
// dependencies resolved, and the result committed to a new repository.
func New(ctx context.Context, opts NewOptions) (*Project, error) {
	if opts.Name == "" {
		opts.Name = RandomName()
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	dir, err := filepath.Abs(opts.Name)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if _, err := os.Stat(dir); err == nil {
		return nil, errors.Errorf("%s already exists", dir)
	}

	if opts.Template != "" {
		if err := runCommand(ctx, "", nil, opts.Output, "git", "clone", opts.Template, dir); err != nil {
			return nil, errors.Wrap(err, "failed to clone template")
		}
		if err := runCommand(ctx, dir, nil, opts.Output, "git", "remote", "remove", "origin"); err != nil {
			return nil, err
		}
	} else {
		if err := writeTemplate(dir); err != nil {
			return nil, err
		}
		steps := [][]string{
			{"go", "get", "github.com/osuushi/genart@latest"},
			{"go", "mod", "tidy"},
			{"git", "init", "--quiet"},
			{"git", "add", "."},
			{"git", "commit", "--quiet", "-m", "Initial commit"},
		}
		for _, step := range steps {
			if err := runCommand(ctx, dir, nil, opts.Output, step[0], step[1:]...); err != nil {
				return nil, err
			}
		}
	}

	p, err := Open(dir)
	if err != nil {
		return nil, err
	}
	p.Output = opts.Output
	if opts.Template != "" && p.Config.Template == "" {
		p.Config.Template = opts.Template
		if err := p.Config.Save(dir); err != nil {
			return nil, err
		}
	}
	fmt.Fprintf(opts.Output, "\nCreated new genart project: %s\n", dir)
	return p, nil
}

// writeTemplate renders the built-in template into a new directory dir.
func writeTemplate(dir string) error {
	name := filepath.Base(dir)
	data := templateData{
		Name:   name,
		Module: nonModuleChars.ReplaceAllString(strings.ToLower(name), "-"),
		Port:   DefaultPort,
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.WithStack(err)
	}
	entries, err := fs.ReadDir(templateFS, "template")
	if err != nil {
		return errors.WithStack(err)
	}
	for _, entry := range entries {
		tmpl, err := template.ParseFS(templateFS, "template/"+entry.Name())
		if err != nil {
			return errors.Wrapf(err, "bad template file %s", entry.Name())
		}
		target := strings.TrimSuffix(entry.Name(), ".tmpl")
		if target == "gitignore" {
			target = ".gitignore"
		}
		if err := writeRendered(filepath.Join(dir, target), tmpl, data); err != nil {
			return err
		}
	}
	return DefaultConfig().Save(dir)
}

func writeRendered(path string, tmpl *template.Template, data templateData) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = errors.WithStack(closeErr)
		}
	}()
	return errors.Wrapf(tmpl.Execute(f, data), "failed to render %s", path)
}
