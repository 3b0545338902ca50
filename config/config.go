// Package config loads prflow's configuration from file, environment, and
// defaults. Settings live in config.yaml under the config directory and can
// be overridden with PRFLOW_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/prflow/prflow/paths"
)

// Config holds the server settings.
type Config struct {
	Remote     string `mapstructure:"remote" yaml:"remote"`
	BaseBranch string `mapstructure:"base_branch" yaml:"base_branch"`
	Debug      bool   `mapstructure:"debug" yaml:"debug"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
}

// Default configuration values.
const (
	DefaultRemote     = "origin"
	DefaultBaseBranch = "main"
)

// Load reads the configuration. cfgFile overrides the default location when
// non-empty. A missing config file is not an error; defaults apply.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := paths.ConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config directory: %w", err)
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("remote", DefaultRemote)
	v.SetDefault("base_branch", DefaultBaseBranch)
	v.SetDefault("debug", false)
	v.SetDefault("log_file", "")

	v.SetEnvPrefix("PRFLOW")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || (cfgFile == "" && os.IsNotExist(err)) {
			// No config file is fine; defaults apply.
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// WriteDefault writes a config file populated with defaults to the given
// path, creating parent directories as needed. Refuses to overwrite an
// existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	cfg := Config{
		Remote:     DefaultRemote,
		BaseBranch: DefaultBaseBranch,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
