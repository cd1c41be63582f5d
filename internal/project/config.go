package project

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-project settings file, at the project root.
const ConfigFileName = "genart.yaml"

const DefaultPort = 9090

type Config struct {
	// Port for `genart serve`.
	Port int `yaml:"port"`
	// Fixed seed for every run. Unset means a fresh random seed each time.
	Seed *uint64 `yaml:"seed,omitempty"`
	// The git URL the project was cloned from, if any.
	Template string `yaml:"template,omitempty"`
	// Commit sources and the new image after each successful run.
	Commit bool `yaml:"commit"`
	// Show a desktop notification when a watched run fails.
	Notify bool `yaml:"notify"`
}

func DefaultConfig() Config {
	return Config{
		Port:   DefaultPort,
		Commit: true,
		Notify: true,
	}
}

// LoadConfig reads genart.yaml from dir. Keys missing from the file, or a
// missing file, keep their defaults.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.WithStack(err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse %s", path)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, errors.Errorf("%s: port %d out of range", path, cfg.Port)
	}
	return cfg, nil
}

func (c Config) Save(dir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0o644))
}
