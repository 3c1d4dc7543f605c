package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings read from the config file and the environment.
type Config struct {
	Store       string    `mapstructure:"store"`
	Autosave    bool      `mapstructure:"autosave"`
	MetricsFile string    `mapstructure:"metrics_file"`
	Log         LogConfig `mapstructure:"log"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format"`
}

const envPrefix = "ADDRESSBOOK"

func DefaultConfig() *Config {
	return &Config{
		Store:    "address_book.db",
		Autosave: false,
		Log:      LogConfig{Format: "text"},
	}
}

// Dir is where the config file is searched for besides the working directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "addressbook")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "addressbook")
}

// Load reads the config. With an empty path, config.yaml is searched in the
// working directory then in [Dir] and defaults are used when none exists.
// A path that is given must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	cfg := DefaultConfig()
	v.SetDefault("store", cfg.Store)
	v.SetDefault("autosave", cfg.Autosave)
	v.SetDefault("metrics_file", cfg.MetricsFile)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.format", cfg.Log.Format)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && (path != "" || !errors.As(err, &notFound)) {
		return nil, fmt.Errorf("config: %w", err)
	}

	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Store == "" {
		return errors.New("config: store is required")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: log.format %q must be text or json", c.Log.Format)
	}
	return nil
}
