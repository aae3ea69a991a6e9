package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"settingsexporter/internal/app"
	"settingsexporter/internal/cli"
)

func newInspectCmd() *cobra.Command {
	var machine, machinesDir, format string
	var keys bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the container layout of the active machine",
		Long: `Lists every position of the global stack and of each extruder stack with
the container that fills it and how many settings it defines, followed by
the number of keys each stack resolves. With --keys every resolved key is
listed with the stack, role and container it is taken from.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := cli.ParseOutputFormat(format)
			if err != nil {
				return err
			}
			application, err := newApplication(&app.Config{
				Machine:     machine,
				MachinesDir: machinesDir,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Inspect(commandContext(cmd), cmd.OutOrStdout(), outputFormat, keys)
		},
	}

	cmd.Flags().StringVar(&machine, "machine", "", "Machine to inspect (default: store.activeMachine, or the only machine)")
	cmd.Flags().StringVar(&machinesDir, "machines-dir", "", "Directory holding machine configurations")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")
	cmd.Flags().BoolVar(&keys, "keys", false, "List the source container of every resolved key")
	return cmd
}
