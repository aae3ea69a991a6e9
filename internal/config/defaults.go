package config

import "path/filepath"

const (
	defaultFileName = "settings.json"
	dataDir         = ".local/share/settingsexporter"
)

// GetDefaultConfig returns the built-in configuration every layer is merged onto.
func GetDefaultConfig() ExporterConfig {
	machinesDir := filepath.Join("~", dataDir, "machines")
	stringify := false
	return ExporterConfig{
		GlobalSettings: GlobalSettings{
			LogLevel: "info",
		},
		Store: StoreConfig{
			MachinesDir: machinesDir,
		},
		Export: ExportConfig{
			DefaultFileName:   defaultFileName,
			StringifyResolved: &stringify,
			Prompt:            PromptTUI,
		},
	}
}
