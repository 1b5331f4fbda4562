// stop.go implements the "labctl stop" command.
//
// Stop brings the profile's container down via docker compose and then
// removes the temporary X11 auth file, since the mount it backed is gone.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/isaaclab-tools/labctl/internal/x11"
)

// NewStopCommand creates the "stop" cobra command.
func NewStopCommand() *cobra.Command {
	flags := &containerFlags{}

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running container",
		Long: `Stop the profile's running container via docker compose down and clean
up the temporary X11 authentication file.

Fails when the container is not running.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStop(cmd.Context(), flags)
		},
	}

	addContainerFlags(cmd, flags)
	return cmd
}

// runStop is the main logic function for the stop command.
func runStop(ctx context.Context, flags *containerFlags) error {
	c, closer, err := newContainerInterface(ctx, flags)
	if err != nil {
		return err
	}
	defer closer()

	if err := c.Stop(ctx, nil, nil); err != nil {
		return err
	}

	// The auth file only backs the now-removed container mount; dropping
	// it here keeps stale credentials from accumulating under /tmp.
	return x11.NewHelper(c.State()).Cleanup()
}
