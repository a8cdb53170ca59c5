/*
Package config handles loading, validating, and saving fact-engine
configuration.

Configuration is stored in ~/.fact-engine.json:

	{
	  "database": {"path": ""},
	  "search": {
	    "defaultLimit": 5,
	    "confidenceHigh": 0.8,
	    "confidenceMedium": 0.5,
	    "confidenceMargin": 0.1,
	    "stateBoost": 1.10,
	    "categoryBoost": 1.10,
	    "personaBoost": 1.08,
	    "priorityHighBoost": 1.05,
	    "priorityNormalBoost": 1.02,
	    "correctionBoost": 1.25
	  },
	  "training": {
	    "learningRate": 0.05,
	    "weightFloor": 0.05,
	    "weightCeiling": 0.7,
	    "retrainInterval": 10,
	    "accuracyWindow": 50,
	    "targetAccuracy": 0.85,
	    "correctionThreshold": 0.6
	  },
	  "server": {"host": "0.0.0.0", "port": 8080},
	  "logging": {"level": "info", "format": "console", "outputPath": "stderr"}
	}
*/
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fact-agent/fact-engine/internal/search"
	"github.com/fact-agent/fact-engine/internal/training"
)

// Config is the root configuration structure.
type Config struct {
	Database DatabaseConfig  `json:"database"`
	Search   SearchConfig    `json:"search"`
	Training training.Config `json:"training"`
	Server   ServerConfig    `json:"server"`
	Logging  LoggingConfig   `json:"logging"`
}

// DatabaseConfig locates the SQLite database. An empty path uses the
// default ~/.fact-engine/knowledge.db.
type DatabaseConfig struct {
	Path string `json:"path,omitempty"`
}

// SearchConfig tunes the retriever.
type SearchConfig struct {
	DefaultLimit        int     `json:"defaultLimit"`
	ConfidenceHigh      float64 `json:"confidenceHigh"`
	ConfidenceMedium    float64 `json:"confidenceMedium"`
	ConfidenceMargin    float64 `json:"confidenceMargin"`
	StateBoost          float64 `json:"stateBoost"`
	CategoryBoost       float64 `json:"categoryBoost"`
	PersonaBoost        float64 `json:"personaBoost"`
	PriorityHighBoost   float64 `json:"priorityHighBoost"`
	PriorityNormalBoost float64 `json:"priorityNormalBoost"`
	CorrectionBoost     float64 `json:"correctionBoost"`
}

// ServerConfig tunes the webhook HTTP server.
type ServerConfig struct {
	Host                string `json:"host"`
	Port                int    `json:"port"`
	ReadTimeoutSeconds  int    `json:"readTimeoutSeconds"`
	WriteTimeoutSeconds int    `json:"writeTimeoutSeconds"`
}

// LoggingConfig tunes the structured logger.
type LoggingConfig struct {
	Level      string `json:"level"`
	Format     string `json:"format"`
	OutputPath string `json:"outputPath"`
}

// Default returns the standard configuration.
func Default() *Config {
	boosts := search.DefaultBoosts()
	thresholds := search.DefaultConfidenceThresholds()
	return &Config{
		Search: SearchConfig{
			DefaultLimit:        5,
			ConfidenceHigh:      thresholds.High,
			ConfidenceMedium:    thresholds.Medium,
			ConfidenceMargin:    thresholds.Margin,
			StateBoost:          boosts.State,
			CategoryBoost:       boosts.Category,
			PersonaBoost:        boosts.Persona,
			PriorityHighBoost:   boosts.PriorityHigh,
			PriorityNormalBoost: boosts.PriorityNormal,
			CorrectionBoost:     1.25,
		},
		Training: training.DefaultConfig(),
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                8080,
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
		},
	}
}

// RetrieverConfig converts the search section into retriever tuning.
func (c *Config) RetrieverConfig() search.RetrieverConfig {
	return search.RetrieverConfig{
		Boosts: search.Boosts{
			State:          c.Search.StateBoost,
			Category:       c.Search.CategoryBoost,
			Persona:        c.Search.PersonaBoost,
			PriorityHigh:   c.Search.PriorityHighBoost,
			PriorityNormal: c.Search.PriorityNormalBoost,
		},
		Thresholds: search.ConfidenceThresholds{
			High:   c.Search.ConfidenceHigh,
			Medium: c.Search.ConfidenceMedium,
			Margin: c.Search.ConfidenceMargin,
		},
		CorrectionBoost: c.Search.CorrectionBoost,
	}
}

// GetDefaultConfigPath returns the path to ~/.fact-engine.json.
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".fact-engine.json"), nil
}

// Load reads the configuration from the default path, falling back to
// defaults when the file does not exist.
func Load() (*Config, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Defaults first, so a partial file only overrides what it sets.
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
func Save(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
