package x11

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/isaaclab-tools/labctl/internal/model"
	"github.com/isaaclab-tools/labctl/internal/statefile"
	"github.com/isaaclab-tools/labctl/internal/tmppath"
)

// State file keys, all under the "X11" namespace.
const (
	stateNamespace = "X11"

	// keyForwardingEnabled holds "1" or "0" once the user has answered
	// the enable prompt; absent before the first run.
	keyForwardingEnabled = "X11_FORWARDING_ENABLED"

	// keyTmpXauth holds the path of the temporary .xauth file. The
	// double-underscore prefix marks it as machine-managed; the x11.yaml
	// compose overlay references an environment variable of the same name.
	keyTmpXauth = "__ISAACLAB_TMP_XAUTH"
)

// Environment variable names returned by Configure/Check for the compose
// invocation. x11.yaml mounts ${__ISAACLAB_TMP_XAUTH} into the container.
const (
	EnvTmpXauth = "__ISAACLAB_TMP_XAUTH"
	EnvTmpDir   = "__ISAACLAB_TMP_DIR"
)

// ComposeFileArgs is the compose argument pair that activates the X11
// overlay when forwarding is enabled.
var ComposeFileArgs = []string{"--file", "x11.yaml"}

// Helper implements the X11 forwarding state machine over the shared
// state file. The zero value is not usable; obtain one via NewHelper.
type Helper struct {
	state *statefile.File
	tmp   tmppath.Creator
	auth  Authority

	// in/out and isTerminal exist so tests can drive the one-time enable
	// prompt without a real TTY.
	in         io.Reader
	out        io.Writer
	isTerminal func() bool
}

// NewHelper creates a Helper bound to the given state file, using the
// host xauth binary and the platform mktemp dialect.
func NewHelper(state *statefile.File) *Helper {
	return &Helper{
		state: state,
		tmp:   tmppath.New(),
		auth:  xauthAuthority{},
		in:    os.Stdin,
		out:   os.Stdout,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Configure ensures a temporary X authority file exists, persisting its
// path so later invocations (and Cleanup) find it again. A persisted path
// whose file is still on disk is reused as-is; otherwise a fresh temp
// directory and auth file are created and the new path is persisted.
//
// Returns the environment variables the compose invocation needs:
// EnvTmpXauth (the file) and EnvTmpDir (its directory).
func (h *Helper) Configure(ctx context.Context) (map[string]string, error) {
	if err := h.auth.Available(); err != nil {
		return nil, err
	}

	path, ok := h.state.Get(stateNamespace, keyTmpXauth)
	if !ok || !fileExists(path) {
		dir, err := h.tmp.TempDir(ctx)
		if err != nil {
			return nil, err
		}

		path, err = h.createAuthFile(ctx, dir)
		if err != nil {
			return nil, err
		}

		if err := h.state.Set(stateNamespace, keyTmpXauth, path); err != nil {
			return nil, err
		}
	}

	return map[string]string{
		EnvTmpXauth: path,
		EnvTmpDir:   filepath.Dir(path),
	}, nil
}

// Check resolves whether forwarding applies to this invocation.
//
// On the first run (flag unset) the user is asked once and the answer is
// persisted; when stdin is not a terminal the prompt is skipped and
// forwarding defaults to disabled. On later runs the stored setting is
// reported along with the hint for toggling it by hand.
//
// When forwarding is enabled, Check runs Configure and returns the
// compose file arguments plus the environment variables to inject;
// otherwise it returns (nil, nil, nil).
func (h *Helper) Check(ctx context.Context) ([]string, map[string]string, error) {
	enabled, ok := h.state.Get(stateNamespace, keyForwardingEnabled)
	if !ok {
		var err error
		enabled, err = h.promptForEnable()
		if err != nil {
			return nil, nil, err
		}
		if err := h.state.Set(stateNamespace, keyForwardingEnabled, enabled); err != nil {
			return nil, nil, err
		}
	} else {
		fmt.Fprintf(h.out, "[INFO] X11 forwarding is configured as '%s' in '%s'.\n", enabled, filepath.Base(h.state.Path()))
		if enabled == "1" {
			fmt.Fprintf(h.out, "       To disable X11 forwarding, set '%s=0' in '%s'.\n", keyForwardingEnabled, filepath.Base(h.state.Path()))
		} else {
			fmt.Fprintf(h.out, "       To enable X11 forwarding, set '%s=1' in '%s'.\n", keyForwardingEnabled, filepath.Base(h.state.Path()))
		}
	}

	if enabled != "1" {
		return nil, nil, nil
	}

	env, err := h.Configure(ctx)
	if err != nil {
		return nil, nil, err
	}
	return ComposeFileArgs, env, nil
}

// promptForEnable asks the one-time enable question and returns "1" or
// "0". Any answer other than y/Y (including EOF and a non-interactive
// stdin) disables forwarding.
func (h *Helper) promptForEnable() (string, error) {
	fmt.Fprintln(h.out, "[INFO] X11 forwarding from the Isaac Lab container is disabled by default.")
	fmt.Fprintln(h.out, "[INFO] It will fail if there is no display or if running via ssh without proper configuration.")

	answer := ""
	if h.isTerminal() {
		fmt.Fprint(h.out, "Would you like to enable it? (y/N) ")

		scanner := bufio.NewScanner(h.in)
		if scanner.Scan() {
			answer = strings.TrimSpace(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return "", model.WrapCLIError(model.ExitGeneralError, "failed to read user input", err)
		}
	}

	if strings.EqualFold(answer, "y") {
		fmt.Fprintln(h.out, "[INFO] X11 forwarding is enabled from the container.")
		return "1", nil
	}
	fmt.Fprintln(h.out, "[INFO] X11 forwarding is disabled from the container.")
	return "0", nil
}

// Cleanup removes the temporary auth file and its persisted path.
// Calling it when nothing is persisted, or twice in a row, is a no-op.
func (h *Helper) Cleanup() error {
	path, ok := h.state.Get(stateNamespace, keyTmpXauth)
	if !ok || !fileExists(path) {
		return nil
	}

	fmt.Fprintf(h.out, "[INFO] Removing temporary '.xauth' file: %s\n", path)
	if err := os.Remove(path); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to remove auth file %s", path), err)
	}
	return h.state.Delete(stateNamespace, keyTmpXauth)
}

// Refresh regenerates the auth file's cookie in place, keeping the
// persisted path stable so running containers that mounted it keep
// working. Called before entering the container, since the host cookie
// may have rotated since start.
//
// If forwarding is enabled but no path was ever persisted, the state is
// inconsistent (the container was started without the X11 overlay) and
// the user must restart it. If forwarding is disabled and no path exists,
// nothing needs doing.
func (h *Helper) Refresh(ctx context.Context) error {
	enabled, enabledSet := h.state.Get(stateNamespace, keyForwardingEnabled)
	path, pathSet := h.state.Get(stateNamespace, keyTmpXauth)

	if enabledSet {
		status := "disabled"
		if enabled == "1" {
			status = "enabled"
		}
		fmt.Fprintf(h.out, "[INFO] X11 forwarding is %s from the settings in '%s'.\n", status, filepath.Base(h.state.Path()))
	}

	if pathSet && fileExists(path) {
		if err := h.auth.Available(); err != nil {
			return err
		}
		if err := os.Remove(path); err != nil {
			return model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to remove stale auth file %s", path), err)
		}
		if err := touch(path); err != nil {
			return err
		}
		if err := h.auth.WriteCookie(ctx, path); err != nil {
			return err
		}
		return h.state.Set(stateNamespace, keyTmpXauth, path)
	}

	if !pathSet {
		if enabled == "1" {
			return model.NewCLIError(model.ExitInconsistentState,
				"X11 forwarding is enabled but the temporary .xauth file does not exist").
				WithHint("rebuild the container by running 'labctl start'")
		}
		fmt.Fprintln(h.out, "[INFO] X11 forwarding is disabled. No action taken.")
	}

	return nil
}

// createAuthFile creates a fresh auth file under dir and writes the
// current display cookie into it.
func (h *Helper) createAuthFile(ctx context.Context, dir string) (string, error) {
	path, err := h.tmp.TempFile(ctx, dir, "xauth")
	if err != nil {
		return "", err
	}
	if err := h.auth.WriteCookie(ctx, path); err != nil {
		return "", err
	}
	return path, nil
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// touch creates an empty file at path with owner-only permissions.
// Auth cookies are credentials, so group/other access is withheld.
func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create auth file %s", path), err)
	}
	return f.Close()
}
