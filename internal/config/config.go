// Package config manages otpz application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

// DefaultGroupSeparator splits a displayed code into two groups of three.
const DefaultGroupSeparator = " "

// Config holds the otpz application configuration. Environment variables
// take precedence over values read from the file.
type Config struct {
	AccountsFile   string `yaml:"accounts_file,omitempty" env:"OTPZ_ACCOUNTS_FILE"`
	GroupSeparator string `yaml:"group_separator"         env:"OTPZ_GROUP_SEPARATOR"`
	Output         string `yaml:"output"                  env:"OTPZ_OUTPUT"`
	LogFormat      string `yaml:"log_format"              env:"OTPZ_LOG_FORMAT"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		GroupSeparator: DefaultGroupSeparator,
		Output:         OutputText,
		LogFormat:      OutputText,
	}
}

// Load reads a config file from the given path and applies environment
// overrides. If the file does not exist, the defaults are used.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("invalid output %q, must be %q or %q", c.Output, OutputText, OutputJSON)
	}
	if c.LogFormat != OutputText && c.LogFormat != OutputJSON {
		return fmt.Errorf("invalid log_format %q, must be %q or %q", c.LogFormat, OutputText, OutputJSON)
	}
	return nil
}

// Save writes a config to the given path, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// LoadDefaultWithPath resolves the config path via ConfigPath() and loads the config.
// Returns the config, the resolved path, and any error.
func LoadDefaultWithPath() (*Config, string, error) {
	cfgPath, err := ConfigPath()
	if err != nil {
		return nil, "", fmt.Errorf("failed to determine config path: %w", err)
	}
	cfg, err := Load(cfgPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, cfgPath, nil
}

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ConfigDir returns the default config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".otpz"), nil
}

// ConfigPath returns the config file path, respecting the OTPZ_CONFIG env var.
func ConfigPath() (string, error) {
	if p := os.Getenv("OTPZ_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// AccountsPath returns the accounts file to read. A leading "~/" is
// expanded; an empty setting falls back to accounts in ConfigDir.
func AccountsPath(cfg *Config) (string, error) {
	p := cfg.AccountsFile
	if p == "" {
		dir, err := ConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "accounts"), nil
	}

	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine home directory: %w", err)
		}
		return filepath.Join(home, rest), nil
	}
	return p, nil
}
