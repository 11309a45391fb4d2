// Package commands implements the CLI commands for modlock.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/modlock/internal/app"
	"go.trai.ch/modlock/internal/build"
)

// CLI represents the command line interface for modlock.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(format string, verbose bool) error
	Sync(ctx context.Context, opts app.SyncOptions) error
	Check(ctx context.Context, opts app.CheckOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "modlock",
		Short:         "Resolve, download and lock Modrinth content for a Minecraft server",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	// Declared before the version flag so -v stays with --verbose.
	rootCmd.PersistentFlags().String("log-format", app.LogFormatAuto, "Log format: auto, pretty, or json")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug messages")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("log-format")
		verbose, _ := cmd.Flags().GetBool("verbose")
		return c.app.ConfigureLogging(format, verbose)
	}

	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
