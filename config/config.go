package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig marks malformed arguments or config files.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	// Input
	Input  string `json:"input" yaml:"input" validate:"required"`
	Unique bool   `json:"unique" yaml:"unique"`

	// Parameter filtering
	Include []string `json:"include" yaml:"include" validate:"dive,required"`
	Exclude []string `json:"exclude" yaml:"exclude" validate:"dive,required"`

	// Execution
	Execute string `json:"execute" yaml:"execute" validate:"omitempty,cmdtemplate"`
	Cwd     string `json:"cwd" yaml:"cwd" validate:"omitempty,dir"`
	Quote   bool   `json:"quote" yaml:"quote"`

	// Output behavior
	AppendTo string `json:"appendTo" yaml:"appendTo"`
	Zero     bool   `json:"zero" yaml:"zero"`
	Verbose  bool   `json:"verbose" yaml:"verbose"`
	LogFile  string `json:"logFile" yaml:"logFile"`
}

// HasAction reports whether the run does anything with the URLs it finds.
func (c Config) HasAction() bool {
	return c.Execute != "" || c.AppendTo != ""
}

// FiltersParams reports whether query parameter filtering is requested.
func (c Config) FiltersParams() bool {
	return len(c.Include) > 0 || len(c.Exclude) > 0
}

// Load reads a config file. Files ending in .yaml or .yml are parsed as YAML,
// anything else as JSON with comments and trailing commas allowed.
// Relative paths in the file are resolved against the file's directory.
func Load(path string) (Config, error) {
	cfg, err := decode(path)
	if err != nil {
		return cfg, err
	}

	dir := filepath.Dir(path)
	for _, p := range []*string{&cfg.Input, &cfg.AppendTo, &cfg.Cwd, &cfg.LogFile} {
		*p = resolve(dir, *p)
	}
	return cfg, nil
}

func decode(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: failed to read config file: %w", ErrInvalidConfig, err)
	}

	if isYAMLFile(filepath.Ext(path)) {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: failed to parse YAML from %s: %w", ErrInvalidConfig, path, err)
		}
		return cfg, nil
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return cfg, fmt.Errorf("%w: failed to parse %s: %w", ErrInvalidConfig, path, err)
	}
	if err := json.Unmarshal(std, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: failed to decode %s: %w", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}
