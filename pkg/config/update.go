package config

import (
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, table selection).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string

	s = c.Storage.Backend
	if s != "" {
		res = append(res, OptStorageBackend(s))
	}
	s = c.Storage.Root
	if s != "" {
		res = append(res, OptStorageRoot(s))
	}
	s = c.Storage.Endpoint
	if s != "" {
		res = append(res, OptStorageEndpoint(s))
	}
	s = c.Storage.Region
	if s != "" {
		res = append(res, OptStorageRegion(s))
	}
	s = c.Storage.Bucket
	if s != "" {
		res = append(res, OptStorageBucket(s))
	}
	s = c.Storage.AccessKey
	if s != "" {
		res = append(res, OptStorageAccessKey(s))
	}
	s = c.Storage.SecretKey
	if s != "" {
		res = append(res, OptStorageSecretKey(s))
	}
	res = append(res, OptStorageUseSSL(c.Storage.UseSSL))

	s = c.Input.Prefix
	if s != "" {
		res = append(res, OptInputPrefix(s))
	}
	s = c.Output.Prefix
	if s != "" {
		res = append(res, OptOutputPrefix(s))
	}

	s = c.Transform.Timezone
	if s != "" {
		res = append(res, OptTimezone(s))
	}
	if c.Transform.MaxDropRatio > 0 {
		res = append(res, OptMaxDropRatio(c.Transform.MaxDropRatio))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	if c.JobsNumber > 0 {
		res = append(res, OptJobsNumber(c.JobsNumber))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		slog.Warn("Option cannot be empty, ignoring", "option", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		slog.Warn("Option has to be a positive number, ignoring",
			"option", name, "value", i)
	}
	return res
}

func isValidRatio(name string, f float64) bool {
	res := f >= 0 && f <= 1
	if !res {
		slog.Warn("Option has to be between 0 and 1, ignoring",
			"option", name, "value", f)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Storage.Backend": {"fs": s, "s3": s, "minio": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stdout": s, "stderr": s},
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	vals := maps.Keys(data[name])
	slices.Sort(vals)
	slog.Warn("Option does not support value, ignoring",
		"option", name, "value", val,
		"valid", strings.Join(vals, ", "),
	)
	return false
}
