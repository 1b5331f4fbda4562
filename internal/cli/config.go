// config.go implements the "labctl config" command.
//
// Config renders the merged docker compose configuration — the base file
// plus every profile/settings/flag extension — to stdout or a file. The
// merge itself is docker compose's; this command only assembles the
// argument lists and shows the result.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the "config" cobra command.
func NewConfigCommand() *cobra.Command {
	flags := &containerFlags{}
	var outputPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Render the merged compose configuration",
		Long: `Render the merged docker compose configuration for the selected profile
and extension files, as docker compose itself resolves it.

Examples:
  labctl config
  labctl config --profile ros2 --output merged.yaml`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd.Context(), flags, outputPath)
		},
	}

	addContainerFlags(cmd, flags)
	cmd.Flags().StringVar(&outputPath, "output", "", "Write the merged YAML to this file instead of stdout")
	return cmd
}

// runConfig is the main logic function for the config command.
func runConfig(ctx context.Context, flags *containerFlags, outputPath string) error {
	c, closer, err := newContainerInterface(ctx, flags)
	if err != nil {
		return err
	}
	defer closer()

	return c.Config(ctx, outputPath)
}
