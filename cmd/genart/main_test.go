package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/osuushi/genart/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitExtra(t *testing.T) {
	args, extra := splitExtra([]string{"run", ".", "--", "-fast", "--"})
	assert.Equal(t, []string{"run", "."}, args)
	assert.Equal(t, []string{"-fast", "--"}, extra)

	args, extra = splitExtra([]string{"watch"})
	assert.Equal(t, []string{"watch"}, args)
	assert.Nil(t, extra)
}

func TestParseCommands(t *testing.T) {
	dir := t.TempDir()

	c := newCLI()
	command, err := c.app.Parse([]string{"serve", dir, "-p", "8001"})
	require.NoError(t, err)
	assert.Equal(t, "serve", command)
	assert.Equal(t, dir, *c.serveProject)
	assert.Equal(t, 8001, *c.servePort)

	c = newCLI()
	command, err = c.app.Parse([]string{"run", "--preview", "--seed", "12"})
	require.NoError(t, err)
	assert.Equal(t, "run", command)
	assert.Equal(t, ".", *c.runProject)
	assert.True(t, *c.runPreview)
	assert.Equal(t, "12", *c.runSeed)

	c = newCLI()
	_, err = c.app.Parse([]string{"run", filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func writeSVG(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.svg")
	require.NoError(t, os.WriteFile(path, []byte(`<svg xmlns="http://www.w3.org/2000/svg">`+body+`</svg>`), 0o644))
	return path
}

func TestTriangulateFile(t *testing.T) {
	path := writeSVG(t, `<polygon points="0,0 4,0 4,4 2,1 0,4"/><polygon points="10,0 12,0 11,2"/>`)
	pngPath := filepath.Join(t.TempDir(), "out.png")

	var out bytes.Buffer
	require.NoError(t, triangulateFile(path, &out, pngPath))
	assert.FileExists(t, pngPath)

	// Three triangles for the first polygon, one for the second, plus both
	// outlines.
	assert.Equal(t, 6, bytes.Count(out.Bytes(), []byte("<path")))
}

func TestRenderedPNGFitsLongestSide(t *testing.T) {
	path := writeSVG(t, `<polygon points="0,0 10,0 10,40 0,40"/>`)
	pngPath := filepath.Join(t.TempDir(), "tall.png")
	require.NoError(t, triangulateFile(path, &bytes.Buffer{}, pngPath))

	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	config, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.LessOrEqual(t, config.Height, renderSize)
	assert.Greater(t, config.Height, renderSize-5)
	assert.Less(t, config.Width, renderSize/2)
}

func TestTriangulateFileErrors(t *testing.T) {
	var out bytes.Buffer
	err := triangulateFile(writeSVG(t, `<polygon points="0,0 4,2 4,0 0,3"/>`), &out, "")
	assert.ErrorIs(t, err, geom.ErrSelfIntersectingPolygon)

	err = triangulateFile(writeSVG(t, `<rect width="1" height="1"/>`), &out, "")
	assert.ErrorContains(t, err, "no polygons")
}

func TestHullFile(t *testing.T) {
	path := writeSVG(t, `<polygon points="0,0 4,0 4,4 2,1 0,4"/>`)
	var out bytes.Buffer
	require.NoError(t, hullFile(path, &out, ""))
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("<path")))

	err := hullFile(writeSVG(t, `<polygon points="0,0 1,1 2,2"/>`), &out, "")
	assert.ErrorContains(t, err, "not all on one line")
}
