package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds all configurable values for the server. The sandbox boundary
// itself is not here: it is re-read from the environment on every guard
// invocation, with WorkingDirectory serving as the fallback root.
type Config struct {
	// WorkingDirectory is the default sandbox root and the directory the
	// server considers its working area. Empty means the process cwd.
	WorkingDirectory string `yaml:"working_directory"`
	// Transport selects "stdio" or "http".
	Transport string `yaml:"transport"`
	// Port is the HTTP listen port; ignored for stdio.
	Port int `yaml:"port"`
	// MaxFileSizeMB caps file sizes for whole-file reads. 0 disables the cap.
	MaxFileSizeMB int `yaml:"max_file_size_mb"`
	// LogLevel is a logrus level name.
	LogLevel string `yaml:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format"`
	// InstanceLock acquires an advisory lock so two server instances do not
	// serve the same working directory.
	InstanceLock bool `yaml:"instance_lock"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Transport:     "stdio",
		Port:          8080,
		MaxFileSizeMB: 10,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// LoadFile reads a YAML config file over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Normalize fills the working directory fallback and resolves it to an
// absolute path.
func (c *Config) Normalize() error {
	if c.WorkingDirectory == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		c.WorkingDirectory = cwd
	}
	abs, err := filepath.Abs(c.WorkingDirectory)
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	c.WorkingDirectory = abs
	return nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	info, err := os.Stat(c.WorkingDirectory)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("working directory does not exist: %s", c.WorkingDirectory)
		}
		return fmt.Errorf("error accessing working directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("working directory is not a directory: %s", c.WorkingDirectory)
	}

	if c.Transport != "http" && c.Transport != "stdio" {
		return fmt.Errorf("transport must be 'http' or 'stdio', got %q", c.Transport)
	}
	if c.Transport == "http" && (c.Port < 1 || c.Port > 65535) {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxFileSizeMB < 0 || c.MaxFileSizeMB > 100 {
		return fmt.Errorf("max file size must be between 0 and 100 MB, got %d", c.MaxFileSizeMB)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log format must be 'text' or 'json', got %q", c.LogFormat)
	}
	return nil
}
