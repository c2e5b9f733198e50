package storage

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	// Source is the directory document: a file path or an http(s) URL.
	Source string `yaml:"source"`

	Storage StorageConfig `yaml:"storage"`

	// ViewedExpiryDays is how long the viewed-link set survives without a visit.
	ViewedExpiryDays int `yaml:"viewed_expiry_days"`

	// ExpandMode is "multi" (independent categories) or "single" (one open at a time).
	ExpandMode string `yaml:"expand_mode"`

	// MarkViewedOn is "link" (opening a link) or "expand" (expanding its category).
	MarkViewedOn string `yaml:"mark_viewed_on"`

	// StartExpanded expands every category after the initial load.
	StartExpanded *bool `yaml:"start_expanded"`

	// SearchDebounceMS delays applying search keystrokes; 0 applies each one.
	SearchDebounceMS *int `yaml:"search_debounce_ms"`

	LogPath string `yaml:"log_path"`
}

// StorageConfig selects the persistence backend for viewed links and the theme.
type StorageConfig struct {
	Backend string `yaml:"backend"` // json | sqlite
	Path    string `yaml:"path"`    // empty = FileName(backend) beside the config file
}

const defaultSearchDebounceMS = 150

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	startExpanded := true
	debounce := defaultSearchDebounceMS
	return Config{
		Source:           "services.json",
		Storage:          StorageConfig{Backend: BackendJSON},
		ViewedExpiryDays: 365,
		ExpandMode:       "multi",
		MarkViewedOn:     "link",
		StartExpanded:    &startExpanded,
		SearchDebounceMS: &debounce,
	}
}

// Expanded reports the StartExpanded setting, defaulting to true.
func (c Config) Expanded() bool {
	return c.StartExpanded == nil || *c.StartExpanded
}

// SearchDebounce returns the search debounce delay. Unset and negative
// values give the default.
func (c Config) SearchDebounce() time.Duration {
	ms := defaultSearchDebounceMS
	if c.SearchDebounceMS != nil && *c.SearchDebounceMS >= 0 {
		ms = *c.SearchDebounceMS
	}
	return time.Duration(ms) * time.Millisecond
}

// LoadConfig reads config from the YAML file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.Source == "" {
		config.Source = defaults.Source
	}
	if config.Storage.Backend == "" {
		config.Storage.Backend = defaults.Storage.Backend
	}
	if config.ViewedExpiryDays <= 0 {
		config.ViewedExpiryDays = defaults.ViewedExpiryDays
	}
	if config.ExpandMode == "" {
		config.ExpandMode = defaults.ExpandMode
	}
	if config.MarkViewedOn == "" {
		config.MarkViewedOn = defaults.MarkViewedOn
	}
	if config.StartExpanded == nil {
		config.StartExpanded = defaults.StartExpanded
	}
	if config.SearchDebounceMS == nil || *config.SearchDebounceMS < 0 {
		config.SearchDebounceMS = defaults.SearchDebounceMS
	}

	return &config, nil
}

// SaveConfig writes config to the YAML file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/linkdir/config.yaml
func DefaultConfigFilePath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
