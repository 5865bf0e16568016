package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the optional per-project configuration file looked up at the
// scan root.
const FileName = ".envfill.yaml"

// Config represents the envfill configuration file
type Config struct {
	Ignore IgnoreConfig `yaml:"ignore"`
	Files  FilesConfig  `yaml:"files"`
}

// IgnoreConfig contains suppression rules applied on top of the built-in
// deny-list
type IgnoreConfig struct {
	Variables []string `yaml:"variables"` // Variables never reported or prompted for
	Folders   []string `yaml:"folders"`   // Folders to skip during scanning and discovery
}

// FilesConfig names the configuration files envfill reads and writes
type FilesConfig struct {
	Env     string `yaml:"env"`     // Target file values are written to
	Example string `yaml:"example"` // Example file kept in sync
}

// LoadConfig loads the .envfill.yaml file from the specified directory.
// A missing file yields the default configuration.
func LoadConfig(rootPath string) (*Config, error) {
	configPath := filepath.Join(rootPath, FileName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// EnvFile returns the configured target file name, defaulting to .env
func (c *Config) EnvFile() string {
	if c.Files.Env != "" {
		return c.Files.Env
	}
	return ".env"
}

// ExampleFile returns the configured example file name, defaulting to
// .env.example
func (c *Config) ExampleFile() string {
	if c.Files.Example != "" {
		return c.Files.Example
	}
	return ".env.example"
}

// ShouldIgnoreVariable checks if a variable is suppressed by configuration
func (c *Config) ShouldIgnoreVariable(varName string) bool {
	for _, ignored := range c.Ignore.Variables {
		if ignored == varName {
			return true
		}
	}
	return false
}

// starterConfig is written by init-config as a commented template.
const starterConfig = `# envfill configuration
ignore:
  # Variables never reported or prompted for
  variables: []
  # Folders skipped during scanning and discovery
  folders: []
files:
  # The file values are written to
  env: .env
  # The example file kept in sync
  example: .env.example
`

// WriteStarter creates a starter configuration file in rootPath and
// returns its path. An existing file is never overwritten.
func WriteStarter(rootPath string) (string, error) {
	configPath := filepath.Join(rootPath, FileName)
	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("%s already exists", configPath)
	}
	if err := os.WriteFile(configPath, []byte(starterConfig), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configPath, nil
}
