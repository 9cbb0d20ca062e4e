package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/retroflect/retroflect/internal/models"
)

// Config represents the application configuration
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Relay   RelayConfig   `yaml:"relay"`
	Tracker TrackerConfig `yaml:"tracker"`
	Profile ProfileConfig `yaml:"profile"`
	Voting  VotingConfig  `yaml:"voting"`
}

// BoardConfig selects which board the CLI operates on.
type BoardConfig struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`
}

// RelayConfig controls replication. With Enabled false the board is local
// only and no relay connection is attempted.
type RelayConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

// TrackerConfig wires card promotion to a Gitea instance. An empty URL leaves
// promotion disabled.
type TrackerConfig struct {
	URL        string `yaml:"url"`
	Token      string `yaml:"token"`
	Repository string `yaml:"repository"`
}

// ProfileConfig holds per-person settings.
type ProfileConfig struct {
	DisplayName string `yaml:"display_name"`
}

// VotingConfig holds local voting overrides.
type VotingConfig struct {
	MaxPointsPerUser *int `yaml:"max_points_per_user"`
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		// Return default config if we can't determine config path
		return defaultConfig(), nil
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Return default config if file doesn't exist
		return defaultConfig(), nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Parse YAML
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Fill in any missing values with defaults
	config.applyDefaults()

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(configPath, data, 0o644)
}

// Kind returns the configured board kind as a model value.
func (c *Config) Kind() models.BoardKind {
	if c.Board.Kind == string(models.KindPlanning) {
		return models.KindPlanning
	}
	return models.KindRetro
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "retroflect", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "retroflect", "config.yaml"), nil
}

func defaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Board.ID == "" {
		c.Board.ID = "default"
	}
	if c.Board.Kind == "" {
		c.Board.Kind = string(models.KindRetro)
	}
	if c.Relay.URL == "" {
		c.Relay.URL = "http://localhost:8080"
	}
}
