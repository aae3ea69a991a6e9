package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/settingsexporter"
	projectConfigDir = ".settingsexporter"
	configFileName   = "config.yaml"
)

// LoadConfig loads the configuration by layering default, user, and project settings.
func LoadConfig() (ExporterConfig, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
		userConfig, err := loadConfigFromFile(userConfigPath)
		if err != nil {
			return ExporterConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
		config = mergeConfigs(config, userConfig)
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
		projectConfig, err := loadConfigFromFile(projectConfigPath)
		if err != nil {
			return ExporterConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
		config = mergeConfigs(config, projectConfig)
	}

	return finalize(config)
}

// LoadConfigFromPath loads config.yaml from a single directory on top of the defaults.
func LoadConfigFromPath(dir string) (ExporterConfig, error) {
	config := GetDefaultConfig()

	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err != nil {
		return ExporterConfig{}, fmt.Errorf("config file %s: %w", path, err)
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return ExporterConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	return finalize(mergeConfigs(config, overlay))
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads an ExporterConfig from a YAML file.
func loadConfigFromFile(filePath string) (ExporterConfig, error) {
	var config ExporterConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return ExporterConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return ExporterConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in the
// overlay leave the base untouched.
func mergeConfigs(base, overlay ExporterConfig) ExporterConfig {
	merged := base

	if overlay.GlobalSettings.LogLevel != "" {
		merged.GlobalSettings.LogLevel = overlay.GlobalSettings.LogLevel
	}

	if overlay.Store.MachinesDir != "" {
		merged.Store.MachinesDir = overlay.Store.MachinesDir
	}
	if overlay.Store.ActiveMachine != "" {
		merged.Store.ActiveMachine = overlay.Store.ActiveMachine
	}

	if overlay.Export.DefaultDirectory != "" {
		merged.Export.DefaultDirectory = overlay.Export.DefaultDirectory
	}
	if overlay.Export.DefaultFileName != "" {
		merged.Export.DefaultFileName = overlay.Export.DefaultFileName
	}
	if overlay.Export.StringifyResolved != nil {
		v := *overlay.Export.StringifyResolved
		merged.Export.StringifyResolved = &v
	}
	if overlay.Export.Prompt != "" {
		merged.Export.Prompt = overlay.Export.Prompt
	}

	return merged
}

// finalize expands paths and validates enumerated fields.
func finalize(config ExporterConfig) (ExporterConfig, error) {
	var err error
	if config.Store.MachinesDir, err = ExpandPath(config.Store.MachinesDir); err != nil {
		return ExporterConfig{}, fmt.Errorf("store.machinesDir: %w", err)
	}
	if config.Export.DefaultDirectory, err = ExpandPath(config.Export.DefaultDirectory); err != nil {
		return ExporterConfig{}, fmt.Errorf("export.defaultDirectory: %w", err)
	}

	switch config.Export.Prompt {
	case PromptTUI, PromptSurvey:
	default:
		return ExporterConfig{}, fmt.Errorf("export.prompt: unsupported value %q (want %q or %q)", config.Export.Prompt, PromptTUI, PromptSurvey)
	}
	return config, nil
}

// ExpandPath expands ${VAR} references and a leading "~".
func ExpandPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := osUserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return filepath.Clean(p), nil
}
