package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"settingsexporter/internal/app"
)

type exportOptions struct {
	machine           string
	machinesDir       string
	output            string
	prompt            string
	stringifyResolved bool
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export metadata and settings of the active machine to a JSON file",
		Long: `Exports the global stack and every extruder stack of the active machine.

The whole document is built and checked before the destination is asked for,
so a setting that cannot be represented in JSON aborts the export without
touching any file. Without --output the path is asked for interactively,
either in a dialog (--prompt tui, the default) or on the terminal
(--prompt survey). A path without an extension gets ".json" appended.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &app.Config{
				Machine:     opts.machine,
				MachinesDir: opts.machinesDir,
				Output:      opts.output,
				Prompt:      opts.prompt,
			}
			if cmd.Flags().Changed("stringify-resolved") {
				cfg.StringifyResolved = &opts.stringifyResolved
			}

			application, err := newApplication(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			res, err := application.RunExport(commandContext(cmd))
			if err != nil {
				return err
			}
			if res.Cancelled {
				fmt.Fprintln(cmd.OutOrStdout(), "Export cancelled")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Settings exported to: %s\n", res.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.machine, "machine", "", "Machine to export (default: store.activeMachine, or the only machine)")
	cmd.Flags().StringVar(&opts.machinesDir, "machines-dir", "", "Directory holding machine configurations")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to this path instead of prompting")
	cmd.Flags().StringVar(&opts.prompt, "prompt", "", "How to ask for the destination: tui or survey")
	cmd.Flags().BoolVar(&opts.stringifyResolved, "stringify-resolved", false, "Render resolved values as strings too")
	return cmd
}
