// Runtime support for generative art programs.
//
// An art program is a main package that calls Generate with a function
// drawing onto a canvas. The genart CLI builds and runs it, passing the output
// file name, random seed, and any user constants through the environment:
//
//	func main() {
//		genart.Generate(func(cfg *genart.Config) (*canvas.Canvas, error) {
//			c := canvas.New(aabb.New(gmath.Vec{}, gmath.Vec{X: 1000, Y: 1000}))
//			poly, err := geom.RandomPolygon(cfg.Rng, c.View(), genart.IntConst("SIDES", 12))
//			if err != nil {
//				return nil, err
//			}
//			c.Draw(canvas.Polygon{Polygon: poly})
//			return c, nil
//		})
//	}
package genart

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/osuushi/genart/canvas"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
)

const (
	EnvFileName = "GENART_FILE_NAME"
	EnvSeed     = "GENART_RNG_SEED"
	EnvPreview  = "GENART_PREVIEW"
	EnvProfile  = "GENART_PROFILE"
	EnvDebug    = "GENART_DEBUG"
)

// Width in pixels of the PNG preview written next to the SVG.
const PreviewWidth = 800

var stderr io.Writer = os.Stderr

type Config struct {
	// Where the SVG is written.
	FileName string
	Seed     uint64
	// Seeded from Seed. All randomness in the program should come from here so
	// that runs can be reproduced.
	Rng *rand.Rand
	// Physical size of the document. Defaults to US letter, portrait.
	Width, Height canvas.Length
	// Also write a PNG of the result, with the SVG's name and a .png extension.
	Preview bool
}

// ConfigFromEnv reads the configuration the genart CLI passes to art programs.
// GENART_FILE_NAME is required. Without GENART_RNG_SEED, a random seed is used.
func ConfigFromEnv() (*Config, error) {
	fileName, ok := os.LookupEnv(EnvFileName)
	if !ok || fileName == "" {
		return nil, errors.Errorf("missing required %s env var", EnvFileName)
	}

	var seed uint64
	if s, ok := os.LookupEnv(EnvSeed); ok {
		var err error
		seed, err = strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse the %s env var as a uint64", EnvSeed)
		}
	} else {
		seed = rand.Uint64()
	}

	return &Config{
		FileName: fileName,
		Seed:     seed,
		Rng:      rand.New(rand.NewPCG(seed, seed)),
		Width:    canvas.Inches(8.5),
		Height:   canvas.Inches(11),
		Preview:  os.Getenv(EnvPreview) != "",
	}, nil
}

// Generate runs fn with configuration from the environment, saves the canvas
// it returns, and exits. On failure it prints the error and exits with status 1.
func Generate(fn func(cfg *Config) (*canvas.Canvas, error)) {
	os.Exit(generate(fn))
}

// generate returns the exit code, so that deferred cleanup runs before exiting.
func generate(fn func(cfg *Config) (*canvas.Canvas, error)) int {
	if os.Getenv(EnvDebug) != "" {
		SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if dir := os.Getenv(EnvProfile); dir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.Quiet).Stop()
	}

	if err := tryGenerate(fn); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		Logger().Debug("generate failed", "error", fmt.Sprintf("%+v", err))
		return 1
	}
	return 0
}

func tryGenerate(fn func(cfg *Config) (*canvas.Canvas, error)) error {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return errors.Wrap(err, "failed to read configuration")
	}
	return Run(cfg, fn)
}

// Run is Generate with explicit configuration, returning errors instead of
// exiting.
func Run(cfg *Config, fn func(cfg *Config) (*canvas.Canvas, error)) error {
	fmt.Fprintf(stderr, "genart: seed = %d;\n", cfg.Seed)
	Logger().Info("generating", "file", cfg.FileName, "seed", cfg.Seed)

	c, err := fn(cfg)
	if err != nil {
		return errors.Wrap(err, "function supplied to genart.Generate failed")
	}
	if c == nil {
		return errors.New("function supplied to genart.Generate returned no canvas")
	}

	if err := writeFile(cfg.FileName, func(w io.Writer) error {
		return c.WriteSVG(w, cfg.Width, cfg.Height)
	}); err != nil {
		return errors.Wrap(err, "failed to save SVG")
	}

	if cfg.Preview {
		previewName := PreviewFileName(cfg.FileName)
		if err := writeFile(previewName, func(w io.Writer) error {
			return c.WritePNG(w, PreviewWidth)
		}); err != nil {
			return errors.Wrap(err, "failed to save preview")
		}
	}
	return nil
}

// PreviewFileName is where the PNG preview for an SVG is written.
func PreviewFileName(svgName string) string {
	return strings.TrimSuffix(svgName, filepath.Ext(svgName)) + ".png"
}

func writeFile(name string, write func(w io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return errors.WithStack(err)
	}
	f, err := os.Create(name)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = errors.WithStack(closeErr)
		}
	}()
	return write(f)
}
