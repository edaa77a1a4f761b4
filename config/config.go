// Package config holds the settings read from nodewalk.yml.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/coreos/pkg/capnslog"
	"gopkg.in/yaml.v2"

	"github.com/pontaoski/nodewalk/console"
)

const DefaultPath = "nodewalk.yml"

type Config struct {
	LogLevel string `yaml:"log_level"`
	Trace    bool   `yaml:"trace"`
	DumpEnv  bool   `yaml:"dump_env"`
	Input    string `yaml:"input"`
}

func Default() Config {
	return Config{
		LogLevel: "WARNING",
		Input:    console.ModeAuto,
	}
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error reading %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return cfg, err
}

func (c Config) Write(path string) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}

	return os.WriteFile(path, out, 0o644)
}

func (c Config) Level() (capnslog.LogLevel, error) {
	return capnslog.ParseLevel(strings.ToUpper(c.LogLevel))
}

func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	switch c.Input {
	case console.ModeAuto, console.ModePlain, console.ModeEditor:
	default:
		return fmt.Errorf("input: unknown console mode %q", c.Input)
	}

	return nil
}
