package app

import (
	"fmt"
	"io"
	"os"

	"settingsexporter/internal/config"
	"settingsexporter/internal/prompt"
	"settingsexporter/internal/store"
	"settingsexporter/pkg/logging"
)

const subsystem = "Bootstrap"

// Application wires configuration, the machine store and the exporter.
type Application struct {
	config *Config
	store  *store.MachineStore
	level  logging.LogLevel

	// prompter replaces prompt selection when set.
	prompter prompt.SavePrompter
	stdout   io.Writer
}

// NewApplication loads configuration, applies flag overrides and sets up
// logging. CLI logging goes to stderr so stdout stays clean for output.
func NewApplication(cfg *Config) (*Application, error) {
	level := logging.LevelInfo
	if cfg.Debug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, os.Stderr)

	var (
		exporterCfg config.ExporterConfig
		err         error
	)
	if cfg.ConfigPath != "" {
		exporterCfg, err = config.LoadConfigFromPath(cfg.ConfigPath)
		if err != nil {
			logging.Error(subsystem, err, "Failed to load configuration from path: %s", cfg.ConfigPath)
			return nil, fmt.Errorf("failed to load configuration from path %s: %w", cfg.ConfigPath, err)
		}
		logging.Debug(subsystem, "Loaded configuration from custom path: %s", cfg.ConfigPath)
	} else {
		exporterCfg, err = config.LoadConfig()
		if err != nil {
			logging.Error(subsystem, err, "Failed to load configuration")
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		logging.Debug(subsystem, "Loaded configuration using layered approach")
	}

	if err := applyOverrides(cfg, &exporterCfg); err != nil {
		return nil, err
	}
	cfg.ExporterConfig = &exporterCfg

	if !cfg.Debug {
		level, err = logging.ParseLevel(exporterCfg.GlobalSettings.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("globalSettings.logLevel: %w", err)
		}
		logging.InitForCLI(level, os.Stderr)
	}

	logging.Debug(subsystem, "Machines directory: %s (active: %q)", exporterCfg.Store.MachinesDir, exporterCfg.Store.ActiveMachine)

	return &Application{
		config: cfg,
		store:  store.NewMachineStore(exporterCfg.Store.MachinesDir, exporterCfg.Store.ActiveMachine),
		level:  level,
		stdout: os.Stdout,
	}, nil
}

func applyOverrides(cfg *Config, ec *config.ExporterConfig) error {
	if cfg.Machine != "" {
		ec.Store.ActiveMachine = cfg.Machine
	}
	if cfg.MachinesDir != "" {
		dir, err := config.ExpandPath(cfg.MachinesDir)
		if err != nil {
			return fmt.Errorf("--machines-dir: %w", err)
		}
		ec.Store.MachinesDir = dir
	}
	if cfg.Prompt != "" {
		switch kind := config.PromptKind(cfg.Prompt); kind {
		case config.PromptTUI, config.PromptSurvey:
			ec.Export.Prompt = kind
		default:
			return fmt.Errorf("--prompt: unsupported value %q (want %q or %q)", cfg.Prompt, config.PromptTUI, config.PromptSurvey)
		}
	}
	if cfg.StringifyResolved != nil {
		v := *cfg.StringifyResolved
		ec.Export.StringifyResolved = &v
	}
	return nil
}

// Store returns the machine store.
func (a *Application) Store() *store.MachineStore {
	return a.store
}
