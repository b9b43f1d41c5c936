package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for epics-usage.
type Paths struct {
	// ConfigFile is the path to the config file
	// (~/.epics-usage/config.yaml).
	ConfigFile string

	// HomeDir is the epics-usage home directory (~/.epics-usage).
	HomeDir string
}

// DefaultPaths returns the default paths for epics-usage.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	toolHome := filepath.Join(homeDir, ".epics-usage")

	return &Paths{
		ConfigFile: filepath.Join(toolHome, "config.yaml"),
		HomeDir:    toolHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If EPICS_USAGE_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("EPICS_USAGE_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// EnsureHomeDir creates the epics-usage home directory if it doesn't
// exist.
func EnsureHomeDir() error {
	paths, err := DefaultPaths()
	if err != nil {
		return err
	}

	return os.MkdirAll(paths.HomeDir, 0o755)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}
