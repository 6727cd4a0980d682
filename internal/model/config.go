package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// HistoryPreview is how many history entries the detail view shows
	// per task before truncating.
	HistoryPreview int `mapstructure:"history_preview" yaml:"history_preview"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// DBPath is the SQLite database location.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// ExportPath is where export writes and import reads the portable
	// JSON document.
	ExportPath string `mapstructure:"export_path" yaml:"export_path"`

	// DefaultFrequencyDays pre-fills the frequency field for new tasks.
	DefaultFrequencyDays int `mapstructure:"default_frequency_days" yaml:"default_frequency_days"`

	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/tanktrack/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "tanktrack", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := filepath.Dir(DefaultConfigPath())
	return &AppConfig{
		DBPath:               filepath.Join(dir, "tanktrack.db"),
		ExportPath:           filepath.Join(dir, "export.json"),
		DefaultFrequencyDays: 7,
		Display: DisplayConfig{
			HistoryPreview: 5,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultAppConfig()
	v.SetDefault("db_path", defaults.DBPath)
	v.SetDefault("export_path", defaults.ExportPath)
	v.SetDefault("default_frequency_days", defaults.DefaultFrequencyDays)
	v.SetDefault("display.history_preview", defaults.Display.HistoryPreview)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.DefaultFrequencyDays < 1 {
		cfg.DefaultFrequencyDays = defaults.DefaultFrequencyDays
	}
	if cfg.Display.HistoryPreview < 1 {
		cfg.Display.HistoryPreview = defaults.Display.HistoryPreview
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("db_path", cfg.DBPath)
	v.Set("export_path", cfg.ExportPath)
	v.Set("default_frequency_days", cfg.DefaultFrequencyDays)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
