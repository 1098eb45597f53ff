package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/playlake/playlake/pkg/config"
)

// TestNew_Defaults verifies that a fresh Config is valid and carries
// the documented defaults.
func TestNew_Defaults(t *testing.T) {
	cfg := config.New()

	assert.Equal(t, "fs", cfg.Storage.Backend)
	assert.Equal(t, ".", cfg.Storage.Root)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
	assert.Equal(t, "data", cfg.Input.Prefix)
	assert.Equal(t, "warehouse", cfg.Output.Prefix)
	assert.Equal(t, "UTC", cfg.Transform.Timezone)
	assert.Equal(t, 0.1, cfg.Transform.MaxDropRatio)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)
	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
}

// TestUpdate_Options verifies that Option functions modify the config.
func TestUpdate_Options(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptStorageBackend("minio"),
		config.OptStorageEndpoint("localhost:9000"),
		config.OptStorageBucket("playlake-dev"),
		config.OptInputPrefix("raw"),
		config.OptOutputPrefix("gold"),
		config.OptTimezone("America/New_York"),
		config.OptMaxDropRatio(0.25),
		config.OptJobsNumber(4),
	})

	assert.Equal(t, "minio", cfg.Storage.Backend)
	assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
	assert.Equal(t, "playlake-dev", cfg.Storage.Bucket)
	assert.Equal(t, "raw", cfg.Input.Prefix)
	assert.Equal(t, "gold", cfg.Output.Prefix)
	assert.Equal(t, "America/New_York", cfg.Transform.Timezone)
	assert.Equal(t, 0.25, cfg.Transform.MaxDropRatio)
	assert.Equal(t, 4, cfg.JobsNumber)
}

// TestUpdate_InvalidValuesIgnored verifies that rejected option values
// leave the config in its previous valid state.
func TestUpdate_InvalidValuesIgnored(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptStorageBackend("ftp"),
		config.OptLogLevel("loud"),
		config.OptLogFormat("xml"),
		config.OptMaxDropRatio(1.5),
		config.OptJobsNumber(-3),
		config.OptInputPrefix(""),
	})

	assert.Equal(t, "fs", cfg.Storage.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 0.1, cfg.Transform.MaxDropRatio)
	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	assert.Equal(t, "data", cfg.Input.Prefix)
}

// TestUpdate_EnumNormalization verifies case and whitespace
// normalization of enum options.
func TestUpdate_EnumNormalization(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptStorageBackend("  S3 "),
		config.OptLogLevel("DEBUG"),
	})

	assert.Equal(t, "s3", cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
}

// TestToOptions_RoundTrip verifies that a config survives conversion
// to options and back.
func TestToOptions_RoundTrip(t *testing.T) {
	orig := config.New()
	orig.Update([]config.Option{
		config.OptStorageBackend("s3"),
		config.OptStorageBucket("bkt"),
		config.OptOutputPrefix("gold"),
		config.OptMaxDropRatio(0.05),
	})

	clone := config.New()
	clone.Update(orig.ToOptions())

	assert.Equal(t, orig, clone)
}

// TestPaths verifies the derived file system locations.
func TestPaths(t *testing.T) {
	home := "/home/ana"

	assert.Equal(t,
		filepath.Join(home, ".config", "playlake"),
		config.ConfigDir(home))
	assert.Equal(t,
		filepath.Join(home, ".config", "playlake", "config.yaml"),
		config.ConfigFilePath(home))
	assert.Equal(t,
		filepath.Join(home, ".config", "playlake", "datasets.yaml"),
		config.DatasetsFilePath(home))
	assert.Equal(t,
		filepath.Join(home, ".cache", "playlake", "staging"),
		config.StagingDir(home))
	assert.Equal(t,
		filepath.Join(home, ".local", "share", "playlake", "logs"),
		config.LogDir(home))
}
