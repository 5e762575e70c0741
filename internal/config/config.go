// Package config handles configuration for dmterm.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/rafael/dmterm/internal/models"
)

// Environment variable overrides, loaded from the process environment or a
// local .env file.
const (
	EnvServerURL = "DM_SERVER_URL"
	EnvCampaign  = "DM_CAMPAIGN"
	EnvLogLevel  = "DM_LOG_LEVEL"
)

// MarkdownConfig configures narrative rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`             // "dark", "light", or a glamour style name
	EnableEmoji      bool   `json:"enable_emoji"`      // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"` // Preserve original line breaks
}

// Config represents the user configuration
type Config struct {
	// ServerURL is the base URL of the Narrative Service.
	ServerURL string `json:"server_url"`
	// Campaign identifies the campaign on the server. All requests carry it;
	// the server owns campaign state and persistence.
	Campaign string `json:"campaign"`
	// TimeoutSeconds bounds each request. There is no retry; a timeout
	// surfaces as a single failed turn.
	TimeoutSeconds int `json:"timeout_seconds"`
	// TUITheme selects the interface palette ("dark" or "light").
	TUITheme string `json:"tui_theme"`
	// Verbose enables debug logging to the log file.
	Verbose bool `json:"verbose"`
	// CopyToClipboard copies one-shot query replies to the clipboard.
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	LogLevel        string         `json:"log_level,omitempty"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// Timeout returns the request timeout as a duration
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		ServerURL:       models.DefaultServerURL,
		Campaign:        models.DefaultCampaign,
		TimeoutSeconds:  120,
		TUITheme:        "dark",
		Verbose:         false,
		CopyToClipboard: false,
		LogLevel:        "info",
		Markdown:        DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".dmterm"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the path to the rotating log file
func GetLogPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "dmterm.log"), nil
}

// LoadConfig loads the configuration from disk and applies environment
// overrides. Missing files fall back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnvOverrides(cfg), nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return applyEnvOverrides(DefaultConfig()), fmt.Errorf("failed to parse config file: %w", err)
	}

	return applyEnvOverrides(cfg), nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvOverrides layers DM_* environment variables over cfg. A .env file in
// the working directory is honored but never required.
func applyEnvOverrides(cfg Config) Config {
	_ = godotenv.Load()

	if v := os.Getenv(EnvServerURL); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv(EnvCampaign); v != "" {
		cfg.Campaign = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	return cfg
}

// AvailableThemes returns the selectable TUI theme names
func AvailableThemes() []string {
	return []string{"dark", "light"}
}
