// Package export holds the YAML-driven configuration for the export
// collaborator packages (graphite, httpmetrics, csvreport), following the
// teacher's own cmd/cache/config.go pattern of a yaml.v2-tagged struct
// with a getSettings() method per collaborator.
package export

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/appmetrics/appmetrics/export/graphite"
)

// Config is the top-level YAML document for the metricsdemo example
// binary's export collaborators.
type Config struct {
	Graphite   GraphiteConfig   `yaml:"graphite"`
	HTTP       HTTPConfig       `yaml:"http"`
	CSV        CSVConfig        `yaml:"csv"`
	Prometheus PrometheusConfig `yaml:"prometheus"`
}

// GraphiteConfig is the YAML shape of export/graphite.Config.
type GraphiteConfig struct {
	Enabled  bool   `yaml:"enabled"`
	URI      string `yaml:"uri"`
	Prefix   string `yaml:"prefix"`
	Interval int64  `yaml:"interval"`
}

// getSettings builds export/graphite.Config from the YAML fields,
// interpreting Interval as seconds.
func (c GraphiteConfig) getSettings() graphite.Config {
	return graphite.Config{
		Enabled:  c.Enabled,
		URI:      c.URI,
		Prefix:   c.Prefix,
		Interval: time.Duration(c.Interval) * time.Second,
	}
}

// HTTPConfig configures the export/httpmetrics surface.
type HTTPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// CSVConfig configures the export/csvreport writer.
type CSVConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Tag       string `yaml:"tag"`
	Directory string `yaml:"directory"`
	Interval  int64  `yaml:"interval"`
}

// PrometheusConfig configures the export/prometheus scrape endpoint.
type PrometheusConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path"`
	Subsystem string `yaml:"subsystem"`
}

func defaultConfig() Config {
	return Config{
		Graphite: GraphiteConfig{
			URI:      "localhost:2003",
			Prefix:   "appmetrics",
			Interval: 60,
		},
		HTTP: HTTPConfig{
			Listen: ":8080",
		},
		CSV: CSVConfig{
			Tag:      "reported",
			Interval: 2,
		},
		Prometheus: PrometheusConfig{
			Path:      "/metrics/prometheus",
			Subsystem: "metricsdemo",
		},
	}
}

// GraphiteSettings returns the resolved export/graphite.Config.
func (c Config) GraphiteSettings() graphite.Config {
	return c.Graphite.getSettings()
}

// ReadConfig loads a Config from a YAML file, applying defaults for
// anything the file doesn't set.
func ReadConfig(path string) (*Config, error) {
	c := defaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("can't parse config file %q: %w", path, err)
	}
	return &c, nil
}
