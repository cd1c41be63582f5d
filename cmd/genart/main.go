// The genart command creates, runs, watches, and serves genart projects, and
// exposes the geometry toolkit on SVG files.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/logrusorgru/aurora"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/osuushi/genart"
	"github.com/osuushi/genart/internal/project"
	"github.com/osuushi/genart/internal/serve"
	"github.com/osuushi/genart/internal/watcher"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

type cli struct {
	app     *kingpin.Application
	verbose *bool
	// Arguments after "--", passed to the art program.
	extra []string

	newName     *string
	newTemplate *string

	runProject *string
	runPreview *bool
	runSeed    *string

	watchProject *string
	watchPreview *bool

	serveProject *string
	servePort    *int

	triangulateFile *string
	triangulatePNG  *string
	hullFile        *string
	hullPNG         *string

	exportProject *string
	exportOut     *string
}

func newCLI() *cli {
	c := &cli{app: kingpin.New("genart", "Generative art toolkit.")}
	c.app.HelpFlag.Short('h')
	c.verbose = c.app.Flag("verbose", "Log debug output.").Short('v').Bool()

	newCmd := c.app.Command("new", "Create a new genart project.")
	c.newName = newCmd.Arg("name", "Directory to create. Defaults to a random name.").String()
	c.newTemplate = newCmd.Flag("template", "git URL of a template project to clone.").String()

	runCmd := c.app.Command("run", "Build and run a project to make a new image.")
	c.runProject = runCmd.Arg("project", "Project directory.").Default(".").ExistingDir()
	c.runPreview = runCmd.Flag("preview", "Render a PNG too, and show it in the terminal.").Bool()
	c.runSeed = runCmd.Flag("seed", "Random seed, overriding genart.yaml.").PlaceHolder("N").String()

	watchCmd := c.app.Command("watch", "Re-run a project whenever its sources change.")
	c.watchProject = watchCmd.Arg("project", "Project directory.").Default(".").ExistingDir()
	c.watchPreview = watchCmd.Flag("preview", "Render a PNG with each image.").Bool()

	serveCmd := c.app.Command("serve", "Watch a project, showing each image on a local page.")
	c.serveProject = serveCmd.Arg("project", "Project directory.").Default(".").ExistingDir()
	c.servePort = serveCmd.Flag("port", "Port to serve on, overriding genart.yaml.").Short('p').Int()

	triangulateCmd := c.app.Command("triangulate", "Triangulate the polygons in an SVG file, writing SVG to stdout.")
	c.triangulateFile = triangulateCmd.Arg("file", "SVG file with <polygon> elements.").Required().ExistingFile()
	c.triangulatePNG = triangulateCmd.Flag("png", "Also write a PNG rendering here.").String()

	hullCmd := c.app.Command("hull", "Draw the convex hull of the polygons in an SVG file, writing SVG to stdout.")
	c.hullFile = hullCmd.Arg("file", "SVG file with <polygon> elements.").Required().ExistingFile()
	c.hullPNG = hullCmd.Flag("png", "Also write a PNG rendering here.").String()

	exportCmd := c.app.Command("export", "Archive a project's images.")
	c.exportProject = exportCmd.Arg("project", "Project directory.").Default(".").ExistingDir()
	c.exportOut = exportCmd.Flag("output", "Archive to write. The extension picks the format.").Short('o').String()
	return c
}

func main() {
	c := newCLI()
	args, extra := splitExtra(os.Args[1:])
	c.extra = extra
	command := kingpin.MustParse(c.app.Parse(args))

	level := slog.LevelInfo
	if *c.verbose {
		level = slog.LevelDebug
	}
	genart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := c.run(ctx, command); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", aurora.Bold(aurora.Red("Error:")), err)
		if *c.verbose {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// splitExtra splits off everything after "--".
func splitExtra(args []string) ([]string, []string) {
	i := slices.Index(args, "--")
	if i < 0 {
		return args, nil
	}
	return args[:i], args[i+1:]
}

func (c *cli) run(ctx context.Context, command string) error {
	switch command {
	case "new":
		p, err := project.New(ctx, project.NewOptions{Name: *c.newName, Template: *c.newTemplate})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Next: %s\n", aurora.Cyan("cd "+p.Dir+" && genart serve"))
		return nil

	case "run":
		p, err := c.openProject(*c.runProject)
		if err != nil {
			return err
		}
		if *c.runSeed != "" {
			seed, err := strconv.ParseUint(*c.runSeed, 10, 64)
			if err != nil {
				return errors.Wrap(err, "invalid --seed")
			}
			p.Config.Seed = &seed
		}
		result, err := p.Run(ctx, project.RunOptions{Extra: c.extra, Preview: *c.runPreview})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", aurora.Cyan(result.Image))
		if result.Preview != "" {
			if err := imgcat.CatFile(result.Preview, os.Stdout); err != nil {
				return errors.Wrap(err, "failed to show preview")
			}
		}
		return nil

	case "watch":
		p, err := c.openProject(*c.watchProject)
		if err != nil {
			return err
		}
		return watcher.ForProject(p, project.RunOptions{Extra: c.extra, Preview: *c.watchPreview}).Watch(ctx)

	case "serve":
		p, err := c.openProject(*c.serveProject)
		if err != nil {
			return err
		}
		port := p.Config.Port
		if *c.servePort != 0 {
			port = *c.servePort
		}
		return serve.New(p, project.RunOptions{Extra: c.extra}).Serve(ctx, fmt.Sprintf("127.0.0.1:%d", port))

	case "triangulate":
		return triangulateFile(*c.triangulateFile, os.Stdout, *c.triangulatePNG)

	case "hull":
		return hullFile(*c.hullFile, os.Stdout, *c.hullPNG)

	case "export":
		p, err := c.openProject(*c.exportProject)
		if err != nil {
			return err
		}
		out := *c.exportOut
		if out == "" {
			out = filepath.Base(p.Dir) + "-images.zip"
		}
		images, err := p.Export(out)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d images to %s\n", len(images), aurora.Cyan(out))
		return nil
	}
	return errors.Errorf("unknown command %q", command)
}

func (c *cli) openProject(dir string) (*project.Project, error) {
	p, err := project.Open(dir)
	if err != nil {
		return nil, err
	}
	genart.Logger().Debug("opened project", "dir", p.Dir, "config", p.Config)
	return p, nil
}
