// exec.go implements the non-compose docker CLI invocations: an
// interactive shell inside the container and artifact copies out of it.
package docker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/isaaclab-tools/labctl/internal/model"
)

// ExecShell runs "docker exec --interactive --tty <container> <argv...>"
// with the caller's stdio attached, so the user gets a live shell inside
// the container. The env map becomes -e KEY=VALUE flags on the exec —
// this is how the host DISPLAY variable is forwarded.
//
// The call blocks until the user exits the shell. A non-zero shell exit
// is not an error from labctl's point of view (the user typed `exit 1`),
// so only spawn failures are reported.
func ExecShell(ctx context.Context, containerName string, env map[string]string, argv ...string) error {
	args := []string{"exec", "--interactive", "--tty"}
	for k, v := range env {
		args = append(args, "-e", k+"="+v)
	}
	args = append(args, containerName)
	args = append(args, argv...)

	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		// ExitError means the shell ran and returned non-zero; pass that
		// through silently. Anything else is a spawn failure.
		if _, ok := err.(*exec.ExitError); ok {
			return nil
		}
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to exec into container %q", containerName),
			err,
		)
	}
	return nil
}

// CopyFrom runs "docker cp <container>:<containerPath>/ <hostPath>",
// copying a directory tree out of the container. The trailing slash on
// the source makes docker cp copy the directory itself rather than
// erroring on an existing destination parent.
func CopyFrom(ctx context.Context, containerName, containerPath, hostPath string) error {
	src := containerName + ":" + strings.TrimSuffix(containerPath, "/") + "/"

	cmd := exec.CommandContext(ctx, "docker", "cp", src, hostPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("docker cp %s failed: %s", src, strings.TrimSpace(string(output))),
			err,
		)
	}
	return nil
}
