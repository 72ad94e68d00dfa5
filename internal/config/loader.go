package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file leaves a field empty.
const (
	DefaultProjectPath   = "my-cross-platform-project"
	DefaultEnvFile       = ".env"
	DefaultVenvName      = ".venv"
	DefaultCommitMessage = "Initial project setup via automation script"
)

// LoadFile reads and parses a provisioning config YAML file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Load(data)
}

// Load parses config YAML bytes and fills in defaults.
func Load(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	applyDefaults(&c)
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Project.Path == "" {
		c.Project.Path = DefaultProjectPath
	}
	if c.Env.File == "" {
		c.Env.File = DefaultEnvFile
	}
	if c.Venv.Name == "" {
		c.Venv.Name = DefaultVenvName
	}
	if c.CommitMessage == "" {
		c.CommitMessage = DefaultCommitMessage
	}
}
