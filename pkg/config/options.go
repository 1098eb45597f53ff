package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptStorageBackend sets the storage implementation.
// Valid values: "fs", "s3", "minio".
func OptStorageBackend(s string) Option {
	s = strings.TrimSpace(strings.ToLower(s))
	return func(c *Config) {
		if isValidEnum("Storage.Backend", s) {
			c.Storage.Backend = s
		}
	}
}

// OptStorageRoot sets the base directory for the "fs" backend.
func OptStorageRoot(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Storage Root", s) {
			c.Storage.Root = s
		}
	}
}

// OptStorageEndpoint sets the server address for object store backends.
func OptStorageEndpoint(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Storage.Endpoint = s
	}
}

// OptStorageRegion sets the AWS region for the "s3" backend.
func OptStorageRegion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Storage Region", s) {
			c.Storage.Region = s
		}
	}
}

// OptStorageBucket sets the bucket holding input and output prefixes.
func OptStorageBucket(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Storage Bucket", s) {
			c.Storage.Bucket = s
		}
	}
}

// OptStorageAccessKey sets the static access key.
func OptStorageAccessKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Storage.AccessKey = s
	}
}

// OptStorageSecretKey sets the static secret key.
func OptStorageSecretKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		c.Storage.SecretKey = s
	}
}

// OptStorageUseSSL enables TLS for the "minio" backend.
func OptStorageUseSSL(b bool) Option {
	return func(c *Config) {
		c.Storage.UseSSL = b
	}
}

// OptInputPrefix sets the key prefix of the raw datasets.
func OptInputPrefix(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Input Prefix", s) {
			c.Input.Prefix = s
		}
	}
}

// OptOutputPrefix sets the key prefix of the published tables.
func OptOutputPrefix(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Prefix", s) {
			c.Output.Prefix = s
		}
	}
}

// OptTimezone sets the calendar convention for timestamp decomposition.
func OptTimezone(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Transform Timezone", s) {
			c.Transform.Timezone = s
		}
	}
}

// OptMaxDropRatio sets the dropped-record share that aborts a run.
// 0 disables the gate.
func OptMaxDropRatio(f float64) Option {
	return func(c *Config) {
		if isValidRatio("Transform MaxDropRatio", f) {
			c.Transform.MaxDropRatio = f
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(strings.ToLower(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogLevel sets the minimum log level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(strings.ToLower(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(strings.ToLower(s))
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}
