package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by WriteDefault when path already exists and
// force is not set.
var ErrConfigExists = errors.New("config file already exists")

// WriteDefault writes the effective settings (defaults, environment and any
// file already loaded) to path as YAML.
func WriteDefault(path string, force bool) error {
	if path == "" {
		return fmt.Errorf("config file path not set")
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s: %w", path, ErrConfigExists)
	}

	setDefaults()
	data, err := yaml.Marshal(viper.AllSettings())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return nil
}
