package project

import (
	"path/filepath"
	"slices"

	"github.com/mholt/archiver/v3"
	"github.com/pkg/errors"
)

// Export archives every image the project has produced into out, in the
// format named by out's extension (.zip, .tar.gz, ...). out must not exist.
func (p *Project) Export(out string) ([]string, error) {
	images, err := filepath.Glob(filepath.Join(p.ImagesDir(), "*.svg"))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	images = slices.DeleteFunc(images, func(image string) bool {
		return filepath.Base(image) == LatestImage
	})
	if len(images) == 0 {
		return nil, errors.Errorf("no images in %s", p.ImagesDir())
	}
	if err := archiver.Archive(images, out); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", out)
	}
	return images, nil
}
