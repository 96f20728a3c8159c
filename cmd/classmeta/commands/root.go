// Package commands implements the CLI commands for classmeta.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/classmeta/internal/app"
	"go.trai.ch/classmeta/internal/build"
	"go.trai.ch/classmeta/internal/core/domain"
)

// CLI represents the command line interface for classmeta.
type CLI struct {
	app        Application
	rootCmd    *cobra.Command
	setVerbose func(bool)
}

// Application represents the application logic interface.
type Application interface {
	Inspect(ctx context.Context, class string, opts app.Options) error
	List(ctx context.Context, opts app.Options) error
	Warm(ctx context.Context, opts app.Options) (domain.WarmStats, error)
	Evict(ctx context.Context, classes []string, opts app.Options) error
	Clean(ctx context.Context, opts app.Options) error
	Watch(ctx context.Context, opts app.Options) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "classmeta",
		Short:         "Resolve and cache class hierarchy metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Show debug logs")
	flags.Bool("debug", false, "Do not persist absent metadata in the cache")
	flags.BoolP("no-cache", "n", false, "Bypass the persistent metadata cache")
	flags.Bool("interfaces", true, "Include implemented interfaces in hierarchies")
	flags.String("container", "", "Hierarchy container: plain or mergeable")
	flags.StringP("output", "o", "auto", "Output mode: auto, styled, plain, or json")
	flags.Bool("json", false, "Print JSON (shorthand for --output=json)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && c.setVerbose != nil {
			c.setVerbose(true)
		}
	}

	rootCmd.AddCommand(c.newInspectCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newWarmCmd())
	rootCmd.AddCommand(c.newEvictCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newWatchCmd())
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

// SetVerboseFunc registers the hook called when --verbose is given.
func (c *CLI) SetVerboseFunc(fn func(bool)) {
	c.setVerbose = fn
}

// options collects the configuration overrides shared by every command.
func options(cmd *cobra.Command) app.Options {
	flags := cmd.Flags()

	debug, _ := flags.GetBool("debug")
	noCache, _ := flags.GetBool("no-cache")
	container, _ := flags.GetString("container")
	outputMode, _ := flags.GetString("output")
	if asJSON, _ := flags.GetBool("json"); asJSON {
		outputMode = "json"
	}

	opts := app.Options{
		Debug:      debug,
		NoCache:    noCache,
		Container:  container,
		OutputMode: outputMode,
	}
	if flags.Changed("interfaces") {
		include, _ := flags.GetBool("interfaces")
		opts.IncludeInterfaces = &include
	}
	return opts
}
