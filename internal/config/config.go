// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"strings"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: follow --verbose. Override with --timestamps flag.
	Timestamps *bool `yaml:"timestamps,omitempty"`
}

// Config represents the epics-usage configuration.
// Loaded from ~/.epics-usage/config.yaml.
type Config struct {
	// IOCsFile is the whatrecord IOC metadata feed to scan.
	// Env: EPICS_USAGE_IOCS_FILE
	IOCsFile string `yaml:"iocsFile,omitempty"`

	// TemplateFile overrides the embedded HTML summary template.
	// Env: EPICS_USAGE_TEMPLATE_FILE
	TemplateFile string `yaml:"templateFile,omitempty"`

	// OutputFile is where the HTML summary is written; "-" or empty
	// means stdout.
	// Env: EPICS_USAGE_OUTPUT_FILE
	OutputFile string `yaml:"outputFile,omitempty"`

	// Format selects the summary report format (html, text, none).
	// Env: EPICS_USAGE_FORMAT
	Format string `yaml:"format,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `epics-usage config init` to generate the initial file.
func DefaultConfig() *Config {
	return &Config{
		IOCsFile: "iocs.json",
		Format:   "html",
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.IOCsFile == "" {
		return fmt.Errorf("iocsFile must not be empty")
	}
	if strings.HasSuffix(c.IOCsFile, "/") {
		return fmt.Errorf("iocsFile must be a file, not a directory: %s", c.IOCsFile)
	}
	return nil
}
