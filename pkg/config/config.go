// Package config provides configuration management for playlake.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation warnings for rejected option values are emitted
// via log/slog.
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with a warning - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use PLAYLAKE_ prefix with underscores for nesting:
//
//	PLAYLAKE_STORAGE_BACKEND=s3
//	PLAYLAKE_STORAGE_BUCKET=playlake-dev
//	PLAYLAKE_INPUT_PREFIX=raw
//	PLAYLAKE_OUTPUT_PREFIX=warehouse
//	PLAYLAKE_LOG_LEVEL=info
//	PLAYLAKE_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete playlake configuration.
type Config struct {
	// Storage describes the object store that holds both raw input and
	// the published star-schema output.
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	// Input contains the location of the raw JSON datasets.
	Input InputConfig `mapstructure:"input" yaml:"input"`

	// Output contains the location of the published tables.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Transform contains settings for the pure transformation stage.
	Transform TransformConfig `mapstructure:"transform" yaml:"transform"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// operations (file decoding, table publishing).
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// StorageConfig describes the object store backend.
type StorageConfig struct {
	// Backend selects the storage implementation.
	// Valid values: "fs", "s3", "minio".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Root is the base directory used by the "fs" backend.
	Root string `mapstructure:"root" yaml:"root"`

	// Endpoint is the server address for "s3" and "minio" backends.
	// Empty for "s3" means the default AWS endpoint.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Region is the AWS region for the "s3" backend.
	Region string `mapstructure:"region" yaml:"region"`

	// Bucket holds both the input and output prefixes.
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// AccessKey and SecretKey are static credentials. They arrive here
	// already resolved; the pipeline never parses credential files.
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`

	// UseSSL enables TLS for the "minio" backend.
	UseSSL bool `mapstructure:"use_ssl" yaml:"use_ssl"`
}

// InputConfig contains the location of raw datasets.
type InputConfig struct {
	// Prefix is the key prefix under which the raw datasets live.
	// Dataset sub-paths come from datasets.yaml.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
}

// OutputConfig contains the location of published tables.
type OutputConfig struct {
	// Prefix is the key prefix under which each table is written as a
	// named sub-path in partitioned Parquet.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
}

// TransformConfig contains settings for the transformation stage.
type TransformConfig struct {
	// Timezone is the calendar convention for timestamp decomposition.
	// The default is "UTC"; the host locale is never consulted.
	Timezone string `mapstructure:"timezone" yaml:"timezone"`

	// MaxDropRatio aborts the run when the share of dropped records
	// (malformed lines plus unparseable timestamps) exceeds it.
	// 0 disables the gate.
	MaxDropRatio float64 `mapstructure:"max_drop_ratio" yaml:"max_drop_ratio"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Storage: StorageConfig{
			Backend: "fs",
			Root:    ".",
			Region:  "us-east-1",
		},
		Input: InputConfig{
			Prefix: "data",
		},
		Output: OutputConfig{
			Prefix: "warehouse",
		},
		Transform: TransformConfig{
			Timezone:     "UTC",
			MaxDropRatio: 0.1,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
