package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"settingsexporter/internal/app"
)

func newMenuCmd() *cobra.Command {
	var machine, machinesDir string

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive Settings Exporter menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApplication(&app.Config{
				Machine:     machine,
				MachinesDir: machinesDir,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.RunMenu(commandContext(cmd))
		},
	}

	cmd.Flags().StringVar(&machine, "machine", "", "Machine to export (default: store.activeMachine, or the only machine)")
	cmd.Flags().StringVar(&machinesDir, "machines-dir", "", "Directory holding machine configurations")
	return cmd
}
