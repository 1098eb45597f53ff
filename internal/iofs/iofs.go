// Package iofs prepares the application's directories and materializes
// the embedded default configuration files on first run.
package iofs

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/playlake/playlake/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed datasets.yaml
var DatasetsYAML string

// EnsureDirs creates the config, cache and log directories if needed.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.StagingDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	return nil
}

// EnsureConfigFile writes the embedded default config.yaml to the
// config directory unless one already exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return fmt.Errorf("cannot write config file %s: %w", configPath, err)
	}

	return nil
}

// EnsureDatasetsFile writes the embedded default datasets.yaml to the
// config directory unless one already exists.
func EnsureDatasetsFile(homeDir string) error {
	datasetsPath := config.DatasetsFilePath(homeDir)

	if _, err := os.Stat(datasetsPath); err == nil {
		return nil
	}

	if err := os.WriteFile(datasetsPath, []byte(DatasetsYAML), 0644); err != nil {
		return fmt.Errorf("cannot write datasets file %s: %w", datasetsPath, err)
	}

	return nil
}
