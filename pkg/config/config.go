package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Debug   bool          `mapstructure:"debug"`
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StoreConfig holds message store configuration
type StoreConfig struct {
	Path         string        `mapstructure:"path"`
	SelfID       int64         `mapstructure:"self_id"`
	SelfName     string        `mapstructure:"self_name"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	LogFile  string `mapstructure:"log_file"`
	Preserve bool   `mapstructure:"preserve"`
	Level    string `mapstructure:"level"`
}

var (
	// Global config instance
	cfg *Config
)

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		panic("config not initialized")
	}
	return cfg
}

// Load loads configuration from file and environment
func Load(cfgFile string) (*Config, error) {
	// Set defaults first
	setDefaults()

	// Configure viper
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome == "" {
			xdgConfigHome = filepath.Join(home, ".config")
		}

		// Project directory first, then the XDG config location
		viper.AddConfigPath("./.parley")
		viper.AddConfigPath(filepath.Join(xdgConfigHome, "parley"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
	}

	// Enable environment variable support
	viper.AutomaticEnv()
	bindEnvironmentVariables()

	// A missing config file is fine; defaults and env still apply
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	loaded := &Config{}
	if err := viper.Unmarshal(loaded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(loaded); err != nil {
		return nil, err
	}

	cfg = loaded
	return cfg, nil
}

// Set installs c as the global config. Intended for tests and embedding.
func Set(c *Config) {
	cfg = c
}

func validate(c *Config) error {
	if c.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}
	if c.Store.PollInterval <= 0 {
		return fmt.Errorf("store.poll_interval must be positive, got %s", c.Store.PollInterval)
	}
	return nil
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("debug", false)

	// Store defaults
	viper.SetDefault("store.path", "./.parley/messages.db")
	viper.SetDefault("store.self_id", 1)
	viper.SetDefault("store.self_name", "me")
	viper.SetDefault("store.poll_interval", "1s")

	// Logging defaults
	viper.SetDefault("logging.log_file", "./.parley/system.log")
	viper.SetDefault("logging.preserve", false)
	viper.SetDefault("logging.level", "info")
}

// bindEnvironmentVariables binds specific environment variables to Viper keys
func bindEnvironmentVariables() {
	viper.BindEnv("debug", "PARLEY_DEBUG")
	viper.BindEnv("store.path", "PARLEY_STORE_PATH")
	viper.BindEnv("store.self_id", "PARLEY_SELF_ID")
	viper.BindEnv("logging.level", "PARLEY_LOG_LEVEL")
	viper.BindEnv("logging.log_file", "PARLEY_LOG_FILE")
}
