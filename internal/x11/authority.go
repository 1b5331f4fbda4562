// authority.go wraps the external xauth tool behind a small interface so
// the forwarding state machine can be tested without a display.
package x11

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/isaaclab-tools/labctl/internal/model"
)

// Authority writes X display cookies into authority files.
type Authority interface {
	// Available reports whether the authority tooling is usable on this
	// host. Returns a descriptive error when it is not.
	Available() error

	// WriteCookie derives the cookie for the host's current display and
	// merges it into the authority file at path.
	WriteCookie(ctx context.Context, path string) error
}

// xauthAuthority implements Authority with the external xauth binary.
type xauthAuthority struct{}

// Available checks for the xauth executable on PATH.
func (xauthAuthority) Available() error {
	if _, err := exec.LookPath("xauth"); err != nil {
		return model.WrapCLIError(model.ExitMissingTool, "xauth is not installed", err).
			WithHint("install it with 'apt install xauth'")
	}
	return nil
}

// WriteCookie runs "xauth nlist $DISPLAY" to dump the current session's
// cookie, strips the wildcard family marker, and merges the result into
// the target file via "xauth -f <path> nmerge -".
func (xauthAuthority) WriteCookie(ctx context.Context, path string) error {
	display, ok := os.LookupEnv("DISPLAY")
	if !ok {
		return model.NewCLIError(model.ExitGeneralError,
			"DISPLAY is not set — cannot derive an X11 authentication cookie")
	}

	out, err := exec.CommandContext(ctx, "xauth", "nlist", display).Output()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("xauth nlist %s failed", display), err)
	}

	cookie := stripWildcardFamily(string(out))

	merge := exec.CommandContext(ctx, "xauth", "-f", path, "nmerge", "-")
	merge.Stdin = strings.NewReader(cookie)
	if output, err := merge.CombinedOutput(); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("xauth nmerge into %s failed: %s", path, strings.TrimSpace(string(output))), err)
	}

	return nil
}

// stripWildcardFamily removes the "ffff" connection-family marker from an
// xauth nlist dump. The marker pins the cookie to the originating
// hostname; removing it makes the cookie valid from any host — required
// because the container's hostname differs from the host's.
func stripWildcardFamily(cookie string) string {
	return strings.ReplaceAll(cookie, "ffff", "")
}
