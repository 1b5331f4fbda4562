// Package cli implements the cobra-based CLI commands for labctl.
//
// Each subcommand (start, enter, stop, copy, config, status, x11) is
// defined in its own file within this package. This file defines the root
// command that serves as the parent for all subcommands and handles
// global flags.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/isaaclab-tools/labctl/internal/model"
)

// Global flag variables shared across all subcommands. These are bound to
// cobra persistent flags on the root command, which makes them available
// to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, structured output and errors use JSON for machine
	// consumption.
	jsonOutput bool

	// verbose enables detailed logging output for debugging. When true,
	// additional information about operations is printed to stderr.
	verbose bool
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// The root command itself does not perform any action — it only provides
// help text and global flags. Actual functionality is provided by the
// subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "labctl",
		Short: "Isaac Lab development container manager",
		Long: `labctl builds, starts, enters, stops, and inspects the Isaac Lab
development container by orchestrating docker compose, and manages X11
display forwarding into that container.

Profiles select named container configuration variants; each profile
derives its own container and image name and env-file set. User choices
(such as whether X11 forwarding is enabled) persist in a per-context
state file (.container.cfg).`,

		// We format errors ourselves (text or JSON based on --json), so
		// cobra's automatic usage/error printing is suppressed.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// Register subcommands. Each subcommand is defined in its own file
	// and returns a *cobra.Command.
	rootCmd.AddCommand(NewStartCommand())
	rootCmd.AddCommand(NewEnterCommand())
	rootCmd.AddCommand(NewStopCommand())
	rootCmd.AddCommand(NewCopyCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewX11Command())

	return rootCmd
}

// Execute runs the root command and handles exit codes. This is the main
// entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them into
// appropriate OS exit codes. CLIError values carry their own exit codes;
// other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Hint, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), "", nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format (JSON or
// text) based on the --json global flag. Errors always go to stderr;
// stdout is reserved for successful command output.
func printError(message, hint string, underlying error) {
	if jsonOutput {
		errMap := map[string]interface{}{
			"message": message,
		}
		if hint != "" {
			errMap["hint"] = hint
		}
		if underlying != nil {
			errMap["detail"] = underlying.Error()
		}
		data, _ := json.MarshalIndent(map[string]interface{}{"error": errMap}, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
	if hint != "" {
		fmt.Fprintf(os.Stderr, "       %s\n", hint)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is
// enabled. Used throughout the CLI for debug/trace output.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set. Subcommands use
// this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
