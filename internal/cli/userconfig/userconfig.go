package userconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName  = "devexp"
	configFileName = "config.json"

	// DefaultAPIURL is where a local DevExp backend listens.
	DefaultAPIURL = "http://localhost:8080"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UserConfig is the user's local configuration stored in
// ~/.config/devexp/config.json. The theme key is a pure UI preference,
// independent of the session.
type UserConfig struct {
	APIURL string `json:"api_url,omitempty"`
	Theme  string `json:"theme,omitempty"`
}

// GetConfigPath returns the path to the user config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", configDirName)
	return filepath.Join(configDir, configFileName), nil
}

// Load reads the user configuration file.
func Load() (*UserConfig, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	// If config doesn't exist, return empty config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	}

	var cfg UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the user configuration to a file.
func Save(cfg *UserConfig) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config file: %w", err)
	}

	return nil
}

// APIBaseURL resolves the API base URL: DEVEXP_API_URL wins, then the
// config file, then the default.
func APIBaseURL() string {
	if url := os.Getenv("DEVEXP_API_URL"); url != "" {
		return url
	}

	cfg, err := Load()
	if err == nil && cfg.APIURL != "" {
		return cfg.APIURL
	}

	return DefaultAPIURL
}

// SetTheme updates the theme preference and saves the config.
func SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("invalid theme '%s', must be '%s' or '%s'", theme, ThemeLight, ThemeDark)
	}

	cfg, err := Load()
	if err != nil {
		return err
	}

	cfg.Theme = theme
	return Save(cfg)
}

// GetTheme returns the theme preference, defaulting to light.
func GetTheme() string {
	cfg, err := Load()
	if err != nil || cfg.Theme == "" {
		return ThemeLight
	}
	return cfg.Theme
}
