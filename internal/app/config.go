package app

import (
	"settingsexporter/internal/config"
)

// Config holds the application configuration: command line flags plus the
// loaded file configuration.
type Config struct {
	// Debug settings
	Debug bool

	// ConfigPath, when set, replaces the layered lookup with a single directory.
	ConfigPath string

	// Flag overrides; zero values keep the file configuration.
	Machine           string
	MachinesDir       string
	Output            string
	Prompt            string
	StringifyResolved *bool

	// File configuration, filled in by NewApplication.
	ExporterConfig *config.ExporterConfig
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, configPath string) *Config {
	return &Config{
		Debug:      debug,
		ConfigPath: configPath,
	}
}
