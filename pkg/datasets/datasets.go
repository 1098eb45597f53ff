// Package datasets provides configuration for the raw input datasets.
//
// The main entry point is the datasets.yaml file which names each
// logical source and the sub-path it occupies under the input prefix.
// Input files may be arbitrarily partitioned below that sub-path (for
// example by date); the extractor treats the nesting as transparent.
package datasets

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Well-known dataset names consumed by the pipeline.
const (
	SongData = "song_data"
	LogData  = "log_data"
)

// Dataset describes a single logical source of JSON-lines files.
type Dataset struct {
	// Name identifies the dataset; the pipeline expects "song_data"
	// and "log_data" to be present.
	Name string `yaml:"name"`

	// Path is the dataset's sub-path under the input prefix.
	Path string `yaml:"path"`

	// Suffix filters the listed keys; default ".json".
	Suffix string `yaml:"suffix,omitempty"`
}

// Config represents the complete datasets.yaml configuration file.
type Config struct {
	Datasets []Dataset `yaml:"datasets"`
}

// Parse reads a datasets.yaml document and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("datasets: cannot parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the required datasets are declared and
// fills in defaults.
func (c *Config) Validate() error {
	if len(c.Datasets) == 0 {
		return fmt.Errorf("datasets: no datasets declared")
	}
	seen := make(map[string]bool)
	for i := range c.Datasets {
		d := &c.Datasets[i]
		d.Name = strings.TrimSpace(d.Name)
		d.Path = strings.Trim(strings.TrimSpace(d.Path), "/")
		if d.Name == "" {
			return fmt.Errorf("datasets: dataset %d has no name", i)
		}
		if d.Path == "" {
			return fmt.Errorf("datasets: dataset %q has no path", d.Name)
		}
		if seen[d.Name] {
			return fmt.Errorf("datasets: duplicate dataset %q", d.Name)
		}
		seen[d.Name] = true
		if d.Suffix == "" {
			d.Suffix = ".json"
		}
	}
	for _, required := range []string{SongData, LogData} {
		if !seen[required] {
			return fmt.Errorf("datasets: required dataset %q is missing", required)
		}
	}
	return nil
}

// Get returns the dataset with the given name.
func (c *Config) Get(name string) (Dataset, error) {
	for _, d := range c.Datasets {
		if d.Name == name {
			return d, nil
		}
	}
	return Dataset{}, fmt.Errorf("datasets: unknown dataset %q", name)
}
