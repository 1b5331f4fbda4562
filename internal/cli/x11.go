// x11.go implements the "labctl x11" command group.
//
// The refresh and cleanup operations normally run implicitly (enter
// refreshes, stop cleans up); these subcommands expose them directly for
// when the state gets out of step — e.g. the host X session changed while
// the container kept running, or a crashed invocation left a temp file
// behind.
package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/isaaclab-tools/labctl/internal/statefile"
	"github.com/isaaclab-tools/labctl/internal/x11"
)

// NewX11Command creates the "x11" parent command with its subcommands.
func NewX11Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "x11",
		Short: "Manage X11 forwarding state",
		Long: `Manage the X11 forwarding state directly.

X11 forwarding state normally updates as a side effect of start, enter,
and stop. These subcommands run the individual steps by hand.`,
	}

	cmd.AddCommand(newX11RefreshCommand())
	cmd.AddCommand(newX11CleanupCommand())
	return cmd
}

// newX11RefreshCommand creates the "x11 refresh" subcommand.
func newX11RefreshCommand() *cobra.Command {
	var contextDir string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Regenerate the X11 authentication cookie",
		Long: `Regenerate the temporary X11 authentication file's cookie from the
current DISPLAY, keeping the file path stable so a running container's
mount keeps working.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			helper, err := newX11Helper(contextDir)
			if err != nil {
				return err
			}
			return helper.Refresh(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&contextDir, "context", "", "Docker context directory (default: ./docker if present, else .)")
	return cmd
}

// newX11CleanupCommand creates the "x11 cleanup" subcommand.
func newX11CleanupCommand() *cobra.Command {
	var contextDir string

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove the temporary X11 authentication file",
		Long: `Remove the temporary X11 authentication file and forget its path.
A no-op when nothing is persisted, so it is always safe to run.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			helper, err := newX11Helper(contextDir)
			if err != nil {
				return err
			}
			return helper.Cleanup()
		},
	}

	cmd.Flags().StringVar(&contextDir, "context", "", "Docker context directory (default: ./docker if present, else .)")
	return cmd
}

// newX11Helper loads the context's state file and builds the X11 helper.
// Unlike the container commands, no Docker connection is needed here.
func newX11Helper(explicitContext string) (*x11.Helper, error) {
	contextDir, err := resolveContextDir(explicitContext)
	if err != nil {
		return nil, err
	}

	state, err := statefile.Load(filepath.Join(contextDir, ".container.cfg"))
	if err != nil {
		return nil, err
	}
	return x11.NewHelper(state), nil
}
