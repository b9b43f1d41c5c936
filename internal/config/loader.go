package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Environment variable prefix for epics-usage configuration.
const envPrefix = "EPICS_USAGE"

// Loader handles loading and merging configuration from multiple
// sources. Precedence: environment variables over file values.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("iocsFile", "EPICS_USAGE_IOCS_FILE")
	_ = v.BindEnv("templateFile", "EPICS_USAGE_TEMPLATE_FILE")
	_ = v.BindEnv("outputFile", "EPICS_USAGE_OUTPUT_FILE")
	_ = v.BindEnv("format", "EPICS_USAGE_FORMAT")

	return &Loader{v: v}
}

// Load loads configuration from the given file path. If configFile is
// empty, the default config file path is used. A missing config file is
// not an error; defaults apply.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", expandedPath, err)
		}
	}

	cfg := DefaultConfig()
	if iocsFile := l.v.GetString("iocsFile"); iocsFile != "" {
		cfg.IOCsFile = iocsFile
	}
	if templateFile := l.v.GetString("templateFile"); templateFile != "" {
		cfg.TemplateFile = templateFile
	}
	if outputFile := l.v.GetString("outputFile"); outputFile != "" {
		cfg.OutputFile = outputFile
	}
	if format := l.v.GetString("format"); format != "" {
		cfg.Format = format
	}
	if l.v.IsSet("log.timestamps") {
		timestamps := l.v.GetBool("log.timestamps")
		cfg.Log.Timestamps = &timestamps
	}

	return cfg, nil
}

// WriteDefault writes the default configuration to path in YAML form.
// Used by `epics-usage config init`.
func WriteDefault(path string) error {
	contents, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	return os.WriteFile(path, contents, 0o644)
}
