// start.go implements the "labctl start" command.
//
// Start builds the base image, then brings the profile's container up in
// the background via docker compose. Before starting, the X11 helper
// decides whether the x11.yaml overlay and auth-file variables apply to
// this invocation — which may ask the user a one-time question.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/isaaclab-tools/labctl/internal/x11"
)

// NewStartCommand creates the "start" cobra command.
func NewStartCommand() *cobra.Command {
	flags := &containerFlags{}

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Build the image and start the container in the background",
		Long: `Build the Isaac Lab base image and start the profile's container in
detached mode via docker compose.

On the first run you are asked once whether to enable X11 forwarding;
the answer persists in the state file (.container.cfg). When enabled,
the x11.yaml overlay is merged into the compose configuration and a
temporary X authority file is mounted into the container.

Examples:
  labctl start
  labctl start --profile ros2 --env-file .env.cluster`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(cmd.Context(), flags)
		},
	}

	addContainerFlags(cmd, flags)
	return cmd
}

// runStart is the main logic function for the start command.
func runStart(ctx context.Context, flags *containerFlags) error {
	c, closer, err := newContainerInterface(ctx, flags)
	if err != nil {
		return err
	}
	defer closer()

	// The X11 check runs before the container comes up so the overlay
	// file and auth variables are part of the same compose invocation.
	helper := x11.NewHelper(c.State())
	x11Files, x11Env, err := helper.Check(ctx)
	if err != nil {
		return err
	}
	if x11Files != nil {
		VerboseLog("X11 forwarding enabled: merging x11.yaml with auth file %s", x11Env[x11.EnvTmpXauth])
	}

	return c.Start(ctx, x11Files, x11Env)
}
