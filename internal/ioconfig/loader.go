// Package ioconfig loads configuration from files, environment
// variables and flags. This is an impure package that handles file
// system operations for pkg/config.
package ioconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/playlake/playlake/pkg/config"
	"github.com/playlake/playlake/pkg/datasets"
	"github.com/spf13/viper"
)

// LoadResult contains the loaded configuration and metadata about the source.
type LoadResult struct {
	Config     *config.Config
	SourcePath string // Path to config file used, or empty if using defaults
	Source     string // "file", "defaults", or "defaults+env"
}

// Load reads configuration from a YAML file and returns a validated
// Config with source info. If configPath is empty, the default
// location ~/.config/playlake/config.yaml is tried. Returns an error
// if an explicitly given file is missing or malformed.
func Load(configPath, homeDir string) (*LoadResult, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Enable environment variable overrides.
	// Precedence: flags > env vars > config file > defaults
	v.SetEnvPrefix("PLAYLAKE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults BEFORE reading config - this allows env vars to work
	// with AutomaticEnv() even when the key is absent from the file.
	defaults := config.New()
	v.SetDefault("storage.backend", defaults.Storage.Backend)
	v.SetDefault("storage.root", defaults.Storage.Root)
	v.SetDefault("storage.endpoint", defaults.Storage.Endpoint)
	v.SetDefault("storage.region", defaults.Storage.Region)
	v.SetDefault("storage.bucket", defaults.Storage.Bucket)
	v.SetDefault("storage.access_key", defaults.Storage.AccessKey)
	v.SetDefault("storage.secret_key", defaults.Storage.SecretKey)
	v.SetDefault("storage.use_ssl", defaults.Storage.UseSSL)
	v.SetDefault("input.prefix", defaults.Input.Prefix)
	v.SetDefault("output.prefix", defaults.Output.Prefix)
	v.SetDefault("transform.timezone", defaults.Transform.Timezone)
	v.SetDefault("transform.max_drop_ratio", defaults.Transform.MaxDropRatio)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.destination", defaults.Log.Destination)
	v.SetDefault("jobs_number", defaults.JobsNumber)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		defaultPath := config.ConfigFilePath(homeDir)
		if _, statErr := os.Stat(defaultPath); statErr == nil {
			v.SetConfigFile(defaultPath)
		}
	}

	source := "defaults+env"
	usedConfigPath := ""

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if configPath != "" {
				return nil, fmt.Errorf("config file not found: %s", configPath)
			}
		} else if configPath != "" || v.ConfigFileUsed() != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		source = "file"
		usedConfigPath = v.ConfigFileUsed()
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	normalize(&cfg, defaults)
	cfg.HomeDir = homeDir

	return &LoadResult{
		Config:     &cfg,
		SourcePath: usedConfigPath,
		Source:     source,
	}, nil
}

// normalize fills gaps a config file may leave so downstream code
// always sees a usable value. Enum fields are validated where they are
// consumed (storage factory, logger init).
func normalize(cfg, defaults *config.Config) {
	if cfg.JobsNumber <= 0 {
		cfg.JobsNumber = defaults.JobsNumber
	}
	if cfg.Transform.Timezone == "" {
		cfg.Transform.Timezone = defaults.Transform.Timezone
	}
	if cfg.Transform.MaxDropRatio < 0 || cfg.Transform.MaxDropRatio > 1 {
		cfg.Transform.MaxDropRatio = defaults.Transform.MaxDropRatio
	}
	if cfg.Input.Prefix == "" {
		cfg.Input.Prefix = defaults.Input.Prefix
	}
	if cfg.Output.Prefix == "" {
		cfg.Output.Prefix = defaults.Output.Prefix
	}
}

// LoadDatasets reads and validates the datasets.yaml file.
func LoadDatasets(path string) (*datasets.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read datasets file: %w", err)
	}
	return datasets.Parse(data)
}
