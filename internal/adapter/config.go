package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Content ContentConfig `mapstructure:"content"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig holds local progress storage configuration
type StorageConfig struct {
	Path string `mapstructure:"path"` // BoltDB file; empty keeps progress in memory only
}

// ContentConfig holds lesson content configuration
type ContentConfig struct {
	Dir string `mapstructure:"dir"` // Directory of lesson pages overriding the built-in set
}

// UIConfig holds UI configuration
type UIConfig struct {
	ShowProgress bool   `mapstructure:"show_progress"` // Show completion marks on the home page
	StartPage    string `mapstructure:"start_page"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataPath(), "progress.db"),
		},
		UI: UIConfig{
			ShowProgress: true,
			StartPage:    "/",
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "dojo.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "dojo")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "dojo")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "dojo")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "dojo")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")
	return loadConfig(v, false)
}

// LoadConfigFile loads configuration from an explicit file path.
// Unlike LoadConfig, a missing file is an error.
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return loadConfig(v, true)
}

// loadConfig reads the file v points at; SetConfigName must not be called
// here since it clears a path set with SetConfigFile.
func loadConfig(v *viper.Viper, required bool) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigType("yaml")

	// Environment variable overrides (DOJO_STORAGE_PATH, DOJO_LOGGING_LEVEL, ...)
	v.SetEnvPrefix("DOJO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindDefaults(v, cfg)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || required {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// bindDefaults registers every key so AutomaticEnv can override nested fields
func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("content.dir", cfg.Content.Dir)
	v.SetDefault("ui.show_progress", cfg.UI.ShowProgress)
	v.SetDefault("ui.start_page", cfg.UI.StartPage)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}
