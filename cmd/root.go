package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"settingsexporter/internal/app"
)

// Persistent flags shared by every subcommand.
var (
	configPath string
	debug      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "settingsexporter",
	Short: "Dump printer configuration stacks and their settings to JSON",
	Long: `settingsexporter walks the global configuration stack of a machine and
each of its extruder stacks, and writes every container's metadata and
settings, plus the resolved value of every setting, to a single JSON file.

Machines are read from the store directory configured in
~/.config/settingsexporter/config.yaml or ./.settingsexporter/config.yaml.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. a machine that cannot be loaded)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "settingsexporter version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Cobra prints the error, we just exit non-zero
		stop()
		os.Exit(1)
	}
}

// newApplication builds the application from the persistent flags plus
// whatever the subcommand filled into cfg.
func newApplication(cfg *app.Config) (*app.Application, error) {
	cfg.Debug = debug
	cfg.ConfigPath = configPath
	return app.NewApplication(cfg)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Load config.yaml from this directory instead of the user and project locations")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newMenuCmd())
	rootCmd.AddCommand(newInspectCmd())
}
