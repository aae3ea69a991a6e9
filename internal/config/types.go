package config

// ExporterConfig is the top-level configuration structure for settingsexporter.
type ExporterConfig struct {
	GlobalSettings GlobalSettings `yaml:"globalSettings"`
	Store          StoreConfig    `yaml:"store"`
	Export         ExportConfig   `yaml:"export"`
}

// GlobalSettings holds process-wide preferences.
type GlobalSettings struct {
	LogLevel string `yaml:"logLevel,omitempty"` // "debug", "info", "warn" or "error"
}

// StoreConfig tells the machine store where printer configurations live.
type StoreConfig struct {
	MachinesDir   string `yaml:"machinesDir,omitempty"`   // Directory with one sub-directory per machine
	ActiveMachine string `yaml:"activeMachine,omitempty"` // Empty selects the only machine present
}

// PromptKind selects how the destination path is asked for.
type PromptKind string

const (
	PromptTUI    PromptKind = "tui"
	PromptSurvey PromptKind = "survey"
)

// ExportConfig controls the export action.
type ExportConfig struct {
	DefaultDirectory  string     `yaml:"defaultDirectory,omitempty"`  // Where the save prompt starts; empty is the working directory
	DefaultFileName   string     `yaml:"defaultFileName,omitempty"`   // Suggested file name
	StringifyResolved *bool      `yaml:"stringifyResolved,omitempty"` // Render resolved values as strings too
	Prompt            PromptKind `yaml:"prompt,omitempty"`
}

// StringifyResolvedValues dereferences StringifyResolved, defaulting to false.
func (e ExportConfig) StringifyResolvedValues() bool {
	return e.StringifyResolved != nil && *e.StringifyResolved
}
