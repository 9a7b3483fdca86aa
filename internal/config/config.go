package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pitchdeck/internal/ai"
	"pitchdeck/internal/datasource"
)

// Config is the application configuration, read from an optional JSON file
// with environment variables taking precedence for secrets.
type Config struct {
	Addr         string              `json:"addr"`
	DataDir      string              `json:"dataDir"`
	ThemesDir    string              `json:"themesDir"`
	AutosaveCron string              `json:"autosaveCron"`
	OpenAI       ai.Settings         `json:"openai"`
	Datasources  []datasource.Config `json:"datasources,omitempty"`
}

// Load reads the config file at path (missing file is fine, defaults apply)
// and overlays environment variables.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:         ":8080",
		DataDir:      defaultDataDir(),
		AutosaveCron: "@every 2m",
		OpenAI: ai.Settings{
			Model: "gpt-4",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %q: %w", path, err)
			}
		} else if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	if v := os.Getenv("PITCHDECK_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("PITCHDECK_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("PITCHDECK_THEMES_DIR"); v != "" {
		cfg.ThemesDir = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.OpenAI.BaseURL = v
	}

	if cfg.ThemesDir == "" {
		cfg.ThemesDir = filepath.Join(cfg.DataDir, "themes")
	}
	return cfg, nil
}

// Datasource returns the named datasource config.
func (c *Config) Datasource(name string) (datasource.Config, bool) {
	for _, ds := range c.Datasources {
		if ds.Name == name {
			return ds, true
		}
	}
	return datasource.Config{}, false
}

// DBPath is where the SQLite database lives.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "pitchdeck.db")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".pitchdeck")
}
