package project

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/mholt/archiver/v3"
	"github.com/osuushi/genart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("seed: 42\ncommit: false\n"), 0o644))
		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		require.NotNil(t, cfg.Seed)
		assert.Equal(t, uint64(42), *cfg.Seed)
		assert.False(t, cfg.Commit)
		assert.True(t, cfg.Notify)
		assert.Equal(t, DefaultPort, cfg.Port)
	})

	t.Run("round trip", func(t *testing.T) {
		dir := t.TempDir()
		cfg := DefaultConfig()
		cfg.Port = 8000
		cfg.Template = "https://example.com/template.git"
		require.NoError(t, cfg.Save(dir))
		loaded, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, cfg, loaded)
	})

	t.Run("bad port", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("port: 70000\n"), 0o644))
		_, err := LoadConfig(dir)
		assert.ErrorContains(t, err, "out of range")
	})

	t.Run("bad yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("port: [\n"), 0o644))
		_, err := LoadConfig(dir)
		assert.ErrorContains(t, err, "failed to parse")
	})
}

func TestTimestamp(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 123456789, time.UTC)
	assert.Equal(t, "2024-03-09-14-05-07-123456", Timestamp(at))
	assert.Less(t, Timestamp(at), Timestamp(at.Add(time.Microsecond)))
}

func TestRandomName(t *testing.T) {
	assert.Regexp(t, `^[a-z]+-[a-z]+$`, RandomName())
}

func TestLineWriter(t *testing.T) {
	var lines []string
	w := NewLineWriter(func(line string) { lines = append(lines, line) })

	_, err := w.Write([]byte("genart: seed = 1;\ngenart: con"))
	require.NoError(t, err)
	assert.Equal(t, []string{"genart: seed = 1;"}, lines)

	_, err = w.Write([]byte("st A: int = 1;\r\n\ntrailing"))
	require.NoError(t, err)
	w.Flush()
	w.Flush()
	assert.Equal(t, []string{"genart: seed = 1;", "genart: const A: int = 1;", "", "trailing"}, lines)
}

func openTemp(t *testing.T) *Project {
	t.Helper()
	p, err := Open(t.TempDir())
	require.NoError(t, err)
	p.Output = &bytes.Buffer{}
	return p
}

func TestOpen(t *testing.T) {
	p := openTemp(t)
	assert.True(t, filepath.IsAbs(p.Dir))
	assert.Equal(t, filepath.Join(p.Dir, "images", "latest.svg"), p.LatestImage())

	_, err := Open(filepath.Join(p.Dir, "missing"))
	assert.Error(t, err)

	file := filepath.Join(p.Dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = Open(file)
	assert.ErrorContains(t, err, "not a directory")
}

func TestRunEnv(t *testing.T) {
	p := openTemp(t)
	assert.Equal(t, []string{genart.EnvFileName + "=a.svg"}, p.runEnv("a.svg", RunOptions{}))

	seed := uint64(99)
	p.Config.Seed = &seed
	assert.Equal(t, []string{
		genart.EnvFileName + "=a.svg",
		genart.EnvSeed + "=99",
		genart.EnvPreview + "=1",
		"GENART_USER_CONST_X=1",
	}, p.runEnv("a.svg", RunOptions{Preview: true, Env: []string{"GENART_USER_CONST_X=1"}}))
}

func TestLinkLatest(t *testing.T) {
	p := openTemp(t)
	require.NoError(t, os.MkdirAll(p.ImagesDir(), 0o755))

	for i, content := range []string{"<svg>one</svg>", "<svg>two</svg>"} {
		image := filepath.Join(p.ImagesDir(), Timestamp(time.Now().Add(time.Duration(i)*time.Second))+".svg")
		require.NoError(t, os.WriteFile(image, []byte(content), 0o644))
		require.NoError(t, p.linkLatest(image))

		latest, err := os.ReadFile(p.LatestImage())
		require.NoError(t, err)
		assert.Equal(t, content, string(latest))
	}
	assert.Contains(t, p.Output.(*bytes.Buffer).String(), "Linked ")
}

func TestExport(t *testing.T) {
	p := openTemp(t)
	_, err := p.Export(filepath.Join(t.TempDir(), "empty.zip"))
	assert.ErrorContains(t, err, "no images")

	require.NoError(t, os.MkdirAll(p.ImagesDir(), 0o755))
	for _, name := range []string{"2024-01-01-00-00-00-000000.svg", "2024-01-02-00-00-00-000000.svg", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(p.ImagesDir(), name), []byte("<svg/>"), 0o644))
	}
	require.NoError(t, p.linkLatest(filepath.Join(p.ImagesDir(), "2024-01-02-00-00-00-000000.svg")))

	out := filepath.Join(t.TempDir(), "images.zip")
	exported, err := p.Export(out)
	require.NoError(t, err)
	assert.Len(t, exported, 2)

	var names []string
	require.NoError(t, archiver.Walk(out, func(f archiver.File) error {
		names = append(names, f.Name())
		return nil
	}))
	assert.ElementsMatch(t, []string{"2024-01-01-00-00-00-000000.svg", "2024-01-02-00-00-00-000000.svg"}, names)

	_, err = p.Export(out)
	assert.Error(t, err, "refuses to overwrite")
}

func TestWriteTemplate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Brave Otter")
	require.NoError(t, writeTemplate(dir))

	goMod, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	require.NoError(t, err)
	assert.Contains(t, string(goMod), "module brave-otter\n")

	mainGo, err := os.ReadFile(filepath.Join(dir, "main.go"))
	require.NoError(t, err)
	assert.Contains(t, string(mainGo), "genart.Generate(")

	assert.FileExists(t, filepath.Join(dir, ".gitignore"))
	assert.FileExists(t, filepath.Join(dir, "README.md"))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func TestCommit(t *testing.T) {
	requireGit(t)
	p := openTemp(t)
	ctx := context.Background()
	require.NoError(t, p.git(ctx, "init", "--quiet"))
	require.NoError(t, p.git(ctx, "config", "user.email", "art@example.com"))
	require.NoError(t, p.git(ctx, "config", "user.name", "Art"))
	assert.True(t, p.isRepo())

	require.NoError(t, os.WriteFile(filepath.Join(p.Dir, "main.go"), []byte("package main\n"), 0o644))
	committed, err := p.commit(ctx, "first")
	require.NoError(t, err)
	assert.True(t, committed)

	committed, err = p.commit(ctx, "second")
	require.NoError(t, err)
	assert.False(t, committed, "nothing staged")
}
