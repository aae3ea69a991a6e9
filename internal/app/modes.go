package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"settingsexporter/internal/cli"
	"settingsexporter/internal/config"
	"settingsexporter/internal/exporter"
	"settingsexporter/internal/prompt"
	"settingsexporter/internal/tui"
	"settingsexporter/internal/tui/design"
	"settingsexporter/pkg/logging"
)

// Swapped out in tests.
var (
	runMenu = func(ctx context.Context, opts tui.MenuOptions) (tui.Choice, error) {
		return tui.RunMenu(ctx, opts, tea.WithAltScreen())
	}
	writeClipboard = clipboard.WriteAll
)

// savePrompter picks how the destination is asked for: a fixed --output path,
// the survey prompt or the bubbletea dialog.
func (a *Application) savePrompter() prompt.SavePrompter {
	if a.prompter != nil {
		return a.prompter
	}
	if a.config.Output != "" {
		return prompt.Static(a.config.Output)
	}
	if a.config.ExporterConfig.Export.Prompt == config.PromptSurvey {
		return prompt.NewSurvey()
	}
	return tui.NewDialogPrompter()
}

func (a *Application) newExporter() *exporter.Exporter {
	ec := a.config.ExporterConfig.Export
	return exporter.New(a.store, a.savePrompter(), logging.Default(), exporter.Options{
		StringifyResolved: ec.StringifyResolvedValues(),
		DefaultDirectory:  ec.DefaultDirectory,
		DefaultFileName:   ec.DefaultFileName,
	})
}

// RunExport performs a single export in CLI mode.
func (a *Application) RunExport(ctx context.Context) (exporter.Result, error) {
	logging.Debug("CLI", "Exporting from %s", a.store.Dir())
	return a.newExporter().Export(ctx)
}

// Inspect prints the layout of the active machine. With keys set it also lists
// the container each resolved key comes from.
func (a *Application) Inspect(ctx context.Context, w io.Writer, format cli.OutputFormat, keys bool) error {
	machine, err := a.store.Active(ctx)
	if err != nil {
		return err
	}
	if w == nil {
		w = a.stdout
	}
	return cli.Render(w, cli.Summarize(machine, cli.SummaryOptions{Keys: keys}), format)
}

// RunMenu runs the interactive menu until the user quits. Logging is switched
// to the TUI channel for the duration and buffered between screens.
func (a *Application) RunMenu(ctx context.Context) error {
	design.Initialize(true)

	logChan := logging.InitForTUI(a.level)
	logs := tui.NewLogBuffer(logChan, tui.MaxLogLines)
	defer func() {
		logging.CloseTUIChannel()
		<-logs.Done()
		logging.InitForCLI(a.level, os.Stderr)
	}()

	logging.Info("TUI-Lifecycle", "Machines directory: %s", a.store.Dir())

	exp := a.newExporter()
	opts := tui.MenuOptions{Logs: logs}
	for {
		choice, err := runMenu(ctx, opts)
		if err != nil {
			return err
		}
		logging.Debug("TUI-Lifecycle", "Menu choice: %s", choice)

		switch choice {
		case tui.ChoiceExport:
			res, err := exp.Export(ctx)
			opts.Status = exportStatus(res, err)
			if err == nil && !res.Cancelled {
				opts.LastPath = res.Path
			}
		case tui.ChoiceCopyPath:
			opts.Status = copyPath(opts.LastPath)
		default:
			logging.Info("TUI-Lifecycle", "TUI exited.")
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

func exportStatus(res exporter.Result, err error) tui.Status {
	switch {
	case errors.Is(err, exporter.ErrUnserializable):
		return tui.Status{Text: "Export aborted: some settings cannot be written as JSON", Err: true}
	case err != nil:
		return tui.Status{Text: "Export failed: " + err.Error(), Err: true}
	case res.Cancelled:
		return tui.Status{Text: "Export cancelled"}
	default:
		return tui.Status{Text: fmt.Sprintf("Settings exported to %s (%d extruders)", res.Path, res.Extruders)}
	}
}

func copyPath(path string) tui.Status {
	if path == "" {
		return tui.Status{Text: "Nothing exported yet", Err: true}
	}
	if err := writeClipboard(path); err != nil {
		logging.Warn("TUI-Lifecycle", "Clipboard unavailable: %v", err)
		return tui.Status{Text: "Could not copy to clipboard: " + err.Error(), Err: true}
	}
	return tui.Status{Text: "Copied " + path + " to the clipboard"}
}
