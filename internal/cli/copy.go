// copy.go implements the "labctl copy" command.
//
// Copy extracts the build/run artifacts (training logs, built docs, the
// data-storage directory) from the running container into an artifacts
// directory on the host.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewCopyCommand creates the "copy" cobra command.
func NewCopyCommand() *cobra.Command {
	flags := &containerFlags{}
	var outputDir string

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy artifacts from the running container to the host",
		Long: `Copy the Isaac Lab artifact directories (logs, built documentation,
data storage) from the running container into <output-dir>/artifacts.
Pre-existing destination directories are replaced.

Fails when the container is not running, without creating any
directories on the host.

Examples:
  labctl copy
  labctl copy --output-dir ~/isaac-artifacts`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(cmd.Context(), flags, outputDir)
		},
	}

	addContainerFlags(cmd, flags)
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Host directory for the artifacts (default: the context directory)")
	return cmd
}

// runCopy is the main logic function for the copy command.
func runCopy(ctx context.Context, flags *containerFlags, outputDir string) error {
	c, closer, err := newContainerInterface(ctx, flags)
	if err != nil {
		return err
	}
	defer closer()

	return c.Copy(ctx, outputDir)
}
