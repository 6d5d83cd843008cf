package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file cashplan looks for in its data
// directory.
const FileName = "cashplan.yaml"

// Config represents the top-level cashplan.yaml configuration.
type Config struct {
	User     string        `yaml:"user"`
	LogLevel string        `yaml:"log_level"`
	Windows  WindowsConfig `yaml:"windows"`
	Server   ServerConfig  `yaml:"server"`
	Git      GitConfig     `yaml:"git"`
}

// WindowsConfig sets the default filter windows, in days from today.
type WindowsConfig struct {
	OverviewDays   int `yaml:"overview_days"`
	ProjectionDays int `yaml:"projection_days"`
}

// ServerConfig controls the HTTP read API.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	JWTSecret string `yaml:"jwt_secret"`
}

// GitConfig controls versioning of the data directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a cashplan.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data directory.
func Default(user string) *Config {
	return &Config{
		User:     user,
		LogLevel: "info",
		Windows: WindowsConfig{
			OverviewDays:   30,
			ProjectionDays: 90,
		},
		Server: ServerConfig{
			Addr:      ":8087",
			JWTSecret: "change-me",
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Cashplan",
			AuthorEmail: "cashplan@localhost",
		},
	}
}
