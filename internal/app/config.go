package app

import (
	"errors"
	"fmt"
)

// Output formats.
const (
	FormatHCL  = "hcl"
	FormatYAML = "yaml"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath  string // hcl document to flatten
	OutputPath string // "" or "-" writes to the app's output writer
	ReportPath string // optional YAML run report

	// Format selects what goes to the output: the flat document in HCL or
	// the run report in YAML.
	Format string
	// Internalize pulls external model definitions into the document before
	// flattening.
	Internalize bool

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.Format == "" {
		cfg.Format = FormatHCL
	}
	if cfg.Format != FormatHCL && cfg.Format != FormatYAML {
		return nil, fmt.Errorf("unsupported output format %q: must be %q or %q", cfg.Format, FormatHCL, FormatYAML)
	}

	return &cfg, nil
}

// writesToStdout reports whether the output goes to the app's writer.
func (c *Config) writesToStdout() bool {
	return c.OutputPath == "" || c.OutputPath == "-"
}
