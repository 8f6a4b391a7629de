package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when --config is not given.
const EnvVar = "HASHCHECK_CONFIG"

// Config mirrors the YAML schema. Every section is optional; Default fills
// in the values used when no config file exists.
type Config struct {
	Version int       `yaml:"version"`
	Logging Logging   `yaml:"logging"`
	Metrics Metrics   `yaml:"metrics"`
	UI      UIOptions `yaml:"ui"`
}

type Logging struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // human|json
	// File receives log output while the TUI owns the terminal. Empty discards it.
	File string `yaml:"file,omitempty"`
}

type Metrics struct {
	PrometheusTextfile PromTextfile `yaml:"prometheus_textfile"`
}

type PromTextfile struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

type UIOptions struct {
	// AltScreen runs the TUI in the terminal's alternate screen buffer.
	AltScreen bool `yaml:"alt_screen"`
	// StartDir is where the file picker opens. Empty means the working directory.
	StartDir string `yaml:"start_dir,omitempty"`
	// DefaultText pre-fills the text field.
	DefaultText string `yaml:"default_text"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version: 1,
		Logging: Logging{Level: "info", Format: "human"},
		UI:      UIOptions{AltScreen: true, DefaultText: "Text"},
	}
}

// DefaultPath returns ~/.config/hashcheck/config.yml, or "" when the home
// directory cannot be determined.
func DefaultPath() string {
	h, err := os.UserHomeDir()
	if err != nil || h == "" {
		return ""
	}
	return filepath.Join(h, ".config", "hashcheck", "config.yml")
}

// Resolve picks the config to use: an explicit path must exist, then
// $HASHCHECK_CONFIG, then the default path. A missing default file yields
// Default().
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if env := os.Getenv(EnvVar); env != "" {
		return Load(env)
	}
	p := DefaultPath()
	if p == "" {
		return Default(), nil
	}
	c, err := Load(p)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

// Load reads, parses, expands, and validates a YAML config file. Unset
// fields keep their Default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}
	expanded, err := expandTilde(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(expanded)
	if err != nil {
		return nil, err
	}
	// Expand ${ENV} placeholders before unmarshalling
	b = []byte(os.ExpandEnv(string(b)))
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", expanded, err)
	}
	if err := c.expandPaths(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) expandPaths() error {
	var err error
	if c.Logging.File, err = expandTilde(c.Logging.File); err != nil {
		return err
	}
	if c.Metrics.PrometheusTextfile.Path, err = expandTilde(c.Metrics.PrometheusTextfile.Path); err != nil {
		return err
	}
	if c.UI.StartDir, err = expandTilde(c.UI.StartDir); err != nil {
		return err
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version: %d", c.Version)
	}
	switch stringsLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level invalid: %s", c.Logging.Level)
	}
	switch stringsLower(c.Logging.Format) {
	case "", "human", "json":
	default:
		return fmt.Errorf("logging.format invalid: %s", c.Logging.Format)
	}
	if c.Metrics.PrometheusTextfile.Enabled && c.Metrics.PrometheusTextfile.Path == "" {
		return errors.New("metrics.prometheus_textfile.path is required when enabled")
	}
	return nil
}

// JSONLogs reports whether logging.format selects JSON output.
func (c *Config) JSONLogs() bool { return stringsLower(c.Logging.Format) == "json" }

func expandTilde(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if p[0] != '~' {
		return p, nil
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if p == "~" {
		return h, nil
	}
	return filepath.Join(h, p[2:]), nil
}

func stringsLower(s string) string {
	b := []byte(s)
	for i := range b {
		if 'A' <= b[i] && b[i] <= 'Z' {
			b[i] = b[i] + 32
		}
	}
	return string(b)
}
