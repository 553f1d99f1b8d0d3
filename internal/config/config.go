// Package config reads the YAML configuration that drives code
// generation.
package config

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config names the project export to bind and where the generated
// bindings go.
type Config struct {
	// Project is the path of the .ldtk project export.
	Project string `yaml:"project"`
	// Out is the path of the generated Go file. Empty derives it from
	// Project by swapping the extension for _gen.go.
	Out string `yaml:"out"`
	// Package is the package name of the generated file. Empty means
	// "ldtkgen".
	Package string `yaml:"package"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading generator config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading generator config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading generator config: %w", err)
	}

	return &cfg, nil
}

// Validate fills in defaults and rejects unusable settings. It also
// runs on configs assembled from command-line flags.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Project) == "" {
		return fmt.Errorf("project path is required")
	}
	if c.Out == "" {
		c.Out = strings.TrimSuffix(c.Project, filepath.Ext(c.Project)) + "_gen.go"
	}
	if c.Package == "" {
		c.Package = "ldtkgen"
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("package name %q is not a valid Go identifier", c.Package)
	}
	return nil
}
