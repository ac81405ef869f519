package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for compscan. Fields
// are pointers so the CLI can tell "unset" from zero values when applying
// CLI > local > global precedence.
type FileConfig struct {
	Ext             *string `yaml:"ext"`
	Include         *string `yaml:"include"`
	Exclude         *string `yaml:"exclude"`
	MaxBytes        *int64  `yaml:"max_bytes"`
	Threads         *int    `yaml:"threads"`
	Debug           *bool   `yaml:"debug"`
	NoCache         *bool   `yaml:"no_cache"`
	NoColor         *bool   `yaml:"no_color"`
	DefaultExcludes *bool   `yaml:"default_excludes"`
	Results         *string `yaml:"results"`
	Baseline        *string `yaml:"baseline"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a config file in the report root. It supports
// .compscan.yml/.yaml and compscan.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".compscan.yml", ".compscan.yaml", "compscan.yml", "compscan.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "compscan", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
