// enter.go implements the "labctl enter" command.
//
// Enter opens an interactive bash session inside the running container.
// The X11 auth cookie is refreshed first: the host's cookie may have
// rotated since the container started (new login session, new X server),
// and the mounted auth file must match the current DISPLAY.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/isaaclab-tools/labctl/internal/x11"
)

// NewEnterCommand creates the "enter" cobra command.
func NewEnterCommand() *cobra.Command {
	flags := &containerFlags{}

	cmd := &cobra.Command{
		Use:   "enter",
		Short: "Open an interactive shell inside the running container",
		Long: `Open an interactive bash session inside the profile's running container.

The host DISPLAY variable is forwarded into the session when set, and
the X11 authentication cookie is refreshed beforehand so graphical
applications keep working after host session changes.

Fails when the container is not running.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnter(cmd.Context(), flags)
		},
	}

	addContainerFlags(cmd, flags)
	return cmd
}

// runEnter is the main logic function for the enter command.
func runEnter(ctx context.Context, flags *containerFlags) error {
	c, closer, err := newContainerInterface(ctx, flags)
	if err != nil {
		return err
	}
	defer closer()

	// Refresh before entering so the mounted auth file carries the
	// current host cookie.
	if err := x11.NewHelper(c.State()).Refresh(ctx); err != nil {
		return err
	}

	return c.Enter(ctx)
}
