package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "playlake"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/playlake by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Staged Parquet output lives here before it is published.
// Returns ~/.cache/playlake by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/playlake/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/playlake/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// DatasetsFilePath returns the full path to the datasets.yaml file
// describing the raw input datasets.
// Returns ~/.config/playlake/datasets.yaml by default.
func DatasetsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "datasets.yaml")
}

// StagingDir returns the directory where tables are staged before
// publishing. Each run gets its own subdirectory.
func StagingDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "staging")
}
