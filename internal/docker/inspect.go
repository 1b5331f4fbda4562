// inspect.go implements the engine queries the container interface needs:
// the status of a named container and whether an image reference exists.
//
// Both queries go through the Docker SDK rather than parsing `docker
// inspect` output, because the SDK distinguishes "not found" from real
// daemon errors structurally instead of by exit code.
package docker

import (
	"context"
	"fmt"

	"github.com/docker/docker/client"

	"github.com/isaaclab-tools/labctl/internal/model"
)

// ContainerStatus returns the engine status string for the named
// container (e.g., "running", "exited", "created"). A container that
// does not exist yields an empty string and no error — absence is an
// answer, not a failure.
func (c *Client) ContainerStatus(ctx context.Context, name string) (string, error) {
	resp, err := c.inner.ContainerInspect(ctx, name)
	if err != nil {
		if client.IsErrNotFound(err) {
			return "", nil
		}
		return "", model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to inspect container %q", name),
			err,
		)
	}

	if resp.State == nil {
		return "", nil
	}
	return resp.State.Status, nil
}

// ImageExists reports whether the given image reference is present in the
// local image store. Like ContainerStatus, a missing image yields
// (false, nil); only daemon/transport problems are errors.
func (c *Client) ImageExists(ctx context.Context, ref string) (bool, error) {
	_, err := c.inner.ImageInspect(ctx, ref)
	if err != nil {
		if client.IsErrNotFound(err) {
			return false, nil
		}
		return false, model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to inspect image %q", ref),
			err,
		)
	}
	return true, nil
}
