// status.go implements the "labctl status" command.
//
// Status reports the resolved profile, the derived container/image
// names, and whether the container is running and the image exists.
// Supports --json for scripting.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/isaaclab-tools/labctl/internal/container"
)

// NewStatusCommand creates the "status" cobra command.
func NewStatusCommand() *cobra.Command {
	flags := &containerFlags{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the container and image status for a profile",
		Long: `Show the resolved profile, the derived container and image names, and
whether the container is currently running and the image exists locally.

Examples:
  labctl status
  labctl status --json --profile ros2`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), flags)
		},
	}

	addContainerFlags(cmd, flags)
	return cmd
}

// runStatus is the main logic function for the status command.
func runStatus(ctx context.Context, flags *containerFlags) error {
	c, closer, err := newContainerInterface(ctx, flags)
	if err != nil {
		return err
	}
	defer closer()

	running, err := c.IsRunning(ctx)
	if err != nil {
		return err
	}
	imageExists, err := c.ImageExists(ctx)
	if err != nil {
		return err
	}

	printStatus(c, running, imageExists)
	return nil
}

// printStatus outputs the status in text or JSON format.
func printStatus(c *container.Interface, running, imageExists bool) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"profile":     c.Profile().String(),
			"container":   c.ContainerName(),
			"image":       c.Profile().ImageName(),
			"running":     running,
			"imageExists": imageExists,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Profile:    %s\n", c.Profile())
	fmt.Printf("Container:  %s (%s)\n", c.ContainerName(), runningWord(running))
	fmt.Printf("Image:      %s (%s)\n", c.Profile().ImageName(), existsWord(imageExists))
}

func runningWord(running bool) string {
	if running {
		return "running"
	}
	return "not running"
}

func existsWord(exists bool) string {
	if exists {
		return "present"
	}
	return "not built"
}
