package exporter

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"settingsexporter/internal/prompt"
	"settingsexporter/internal/stack"
	"settingsexporter/pkg/logging"
)

const subsystem = "Exporter"

// ErrNoActiveStack is returned when the source has no global stack to export.
var ErrNoActiveStack = errors.New("no active configuration stack")

// Source returns the configuration that is currently active.
type Source interface {
	Active(ctx context.Context) (*stack.Machine, error)
}

// Options configures an Exporter.
type Options struct {
	// StringifyResolved renders resolved values as strings instead of native JSON scalars.
	StringifyResolved bool
	// DefaultDirectory and DefaultFileName seed the save prompt.
	DefaultDirectory string
	DefaultFileName  string
}

// Result describes a finished export.
type Result struct {
	Path      string
	Cancelled bool
	Extruders int
	Bytes     int
}

// Exporter dumps the active configuration to a user-chosen JSON file.
type Exporter struct {
	source   Source
	prompter prompt.SavePrompter
	log      logging.Sink
	opts     Options
}

// New wires an Exporter. A nil log falls back to logging.Default().
func New(source Source, prompter prompt.SavePrompter, log logging.Sink, opts Options) *Exporter {
	if log == nil {
		log = logging.Default()
	}
	return &Exporter{
		source:   source,
		prompter: prompter,
		log:      log,
		opts:     opts,
	}
}

// Export snapshots the active configuration, asks for a destination and
// writes the document there. The document is fully validated and encoded
// before the prompt is shown, and the write replaces the target atomically.
// Cancelling the prompt returns a Result with Cancelled set and a nil error.
func (e *Exporter) Export(ctx context.Context) (Result, error) {
	machine, err := e.source.Active(ctx)
	if err != nil {
		e.log.Error(subsystem, err, "Failed to get active configuration")
		return Result{}, fmt.Errorf("failed to get active configuration: %w", err)
	}
	if machine == nil || machine.Global == nil {
		return Result{}, ErrNoActiveStack
	}

	e.log.Debug(subsystem, "Retrieving metadata and settings of %s (%d extruders) ...", machine.Global.ID, len(machine.Extruders))

	doc, err := Build(machine, BuildOptions{StringifyResolved: e.opts.StringifyResolved})
	if err != nil {
		e.logUnserializable(err, doc)
		return Result{}, err
	}
	data, err := Encode(doc)
	if err != nil {
		e.logUnserializable(err, doc)
		return Result{}, err
	}

	e.log.Debug(subsystem, "Export all settings to .json file ...")

	path, err := e.prompter.PromptSavePath(ctx, prompt.SaveRequest{
		Title:       "Save File",
		Directory:   e.opts.DefaultDirectory,
		DefaultName: e.opts.DefaultFileName,
		Filter:      prompt.JSONFilter,
	})
	if err != nil {
		return Result{}, fmt.Errorf("save prompt failed: %w", err)
	}
	if path == "" {
		e.log.Info(subsystem, "Export cancelled")
		return Result{Cancelled: true}, nil
	}
	path = withJSONExtension(path)

	if err := writeFileAtomic(path, data, 0o644); err != nil {
		e.log.Error(subsystem, err, "Failed to write %s", path)
		return Result{}, fmt.Errorf("failed to write %s: %w", path, err)
	}

	e.log.Info(subsystem, "Settings exported to: %s", path)
	return Result{
		Path:      path,
		Extruders: len(machine.Extruders),
		Bytes:     len(data),
	}, nil
}

func (e *Exporter) logUnserializable(err error, doc *Document) {
	e.log.Error(subsystem, err, "non json serializable object:")
	if doc != nil {
		e.log.Error(subsystem, nil, "%s", doc.Dump())
	}
}

func withJSONExtension(path string) string {
	if filepath.Ext(path) == "" {
		return path + ".json"
	}
	return path
}
