package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"github.com/wdm0006/framelearn/pkg/logger"
)

// Config describes one fit/predict run.
type Config struct {
	Train   InputConfig   `json:"train" yaml:"train" toml:"train"`
	Target  string        `json:"target" yaml:"target" toml:"target"`
	Predict *InputConfig  `json:"predict,omitempty" yaml:"predict,omitempty" toml:"predict,omitempty"`
	Output  OutputConfig  `json:"output" yaml:"output" toml:"output"`
	Steps   []StepConfig  `json:"steps" yaml:"steps" toml:"steps"`
	Log     logger.Config `json:"log" yaml:"log" toml:"log"`
}

type InputConfig struct {
	Path        string `json:"path" yaml:"path" toml:"path"`
	Type        string `json:"type" yaml:"type" toml:"type"` // csv|jsonl|parquet (default from extension)
	HasHeader   *bool  `json:"has_header,omitempty" yaml:"has_header,omitempty" toml:"has_header,omitempty"`
	Delimiter   string `json:"delimiter" yaml:"delimiter" toml:"delimiter"`
	IndexColumn string `json:"index_column" yaml:"index_column" toml:"index_column"`
}

type OutputConfig struct {
	Path        string `json:"path" yaml:"path" toml:"path"`
	Type        string `json:"type" yaml:"type" toml:"type"` // csv|jsonl|parquet (default from extension)
	Delimiter   string `json:"delimiter" yaml:"delimiter" toml:"delimiter"`
	IndexColumn string `json:"index_column" yaml:"index_column" toml:"index_column"`
}

// StepConfig is one processing step. Type selects the component; the other
// fields are read by the types that need them.
type StepConfig struct {
	Type string `json:"type" yaml:"type" toml:"type"`
	// Name labels a union member; empty members are named by position.
	Name         string            `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Columns      []string          `json:"columns,omitempty" yaml:"columns,omitempty" toml:"columns,omitempty"`
	Value        *float64          `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Min          *float64          `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Max          *float64          `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`
	FitIntercept *bool             `json:"fit_intercept,omitempty" yaml:"fit_intercept,omitempty" toml:"fit_intercept,omitempty"`
	Alpha        float64           `json:"alpha,omitempty" yaml:"alpha,omitempty" toml:"alpha,omitempty"`
	Pattern      string            `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern,omitempty"`
	Replace      string            `json:"replace,omitempty" yaml:"replace,omitempty" toml:"replace,omitempty"`
	Map          map[string]string `json:"map,omitempty" yaml:"map,omitempty" toml:"map,omitempty"`
	Values       []string          `json:"values,omitempty" yaml:"values,omitempty" toml:"values,omitempty"`
	Steps        []StepConfig      `json:"steps,omitempty" yaml:"steps,omitempty" toml:"steps,omitempty"`
}

// loadConfig reads path as JSON, YAML or TOML by its extension.
func loadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", "":
		err = gojson.Unmarshal(b, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Train.Path == "" {
		return fmt.Errorf("train.path is required")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	if len(c.Steps) == 0 {
		return fmt.Errorf("no steps")
	}
	return nil
}

// fileType resolves an explicit type or falls back to the path extension.
func fileType(typ, path string) string {
	if typ != "" {
		return strings.ToLower(typ)
	}
	p := strings.TrimSuffix(strings.ToLower(path), ".gz")
	switch filepath.Ext(p) {
	case ".parquet":
		return "parquet"
	case ".jsonl", ".ndjson":
		return "jsonl"
	}
	return "csv"
}
