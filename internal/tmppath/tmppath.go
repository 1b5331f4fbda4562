// Package tmppath provides a single capability — create a uniquely named
// temporary path — backed by the external mktemp utility.
//
// mktemp speaks two dialects: GNU coreutils (--suffix, --tmpdir) on Linux
// and BSD (-t prefix) on macOS. Rather than branching on the OS at each
// call site, the dialect is selected once at startup behind the Creator
// interface; callers never see which flavor they got.
//
// Delegating to mktemp (instead of os.MkdirTemp/os.CreateTemp) keeps the
// generated names consistent with the rest of the host tooling that
// inspects or cleans those paths.
package tmppath

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/isaaclab-tools/labctl/internal/model"
)

// Creator creates uniquely named temporary paths on the host.
type Creator interface {
	// TempDir creates a new temporary directory and returns its path.
	TempDir(ctx context.Context) (string, error)

	// TempFile creates a new temporary file and returns its path.
	// dir, when non-empty, requests the file be placed under that
	// directory; hint is a name fragment ("xauth") that dialects embed
	// as a suffix or prefix as their syntax allows.
	TempFile(ctx context.Context, dir, hint string) (string, error)
}

// New returns the Creator for the current platform: BSD mktemp syntax on
// macOS, GNU coreutils syntax everywhere else.
func New() Creator {
	if runtime.GOOS == "darwin" {
		return bsdMktemp{}
	}
	return gnuMktemp{}
}

// gnuMktemp implements Creator with GNU coreutils mktemp flags.
type gnuMktemp struct{}

func (gnuMktemp) TempDir(ctx context.Context) (string, error) {
	return runMktemp(ctx, "-d")
}

func (gnuMktemp) TempFile(ctx context.Context, dir, hint string) (string, error) {
	args := []string{"--suffix=." + hint}
	if dir != "" {
		args = append(args, "--tmpdir="+dir)
	}
	return runMktemp(ctx, args...)
}

// bsdMktemp implements Creator with BSD (macOS) mktemp flags. BSD mktemp
// has no --suffix or --tmpdir; -t takes a name prefix and places the file
// under $TMPDIR, so the dir request is honored only through TMPDIR itself.
type bsdMktemp struct{}

func (bsdMktemp) TempDir(ctx context.Context) (string, error) {
	return runMktemp(ctx, "-d")
}

func (bsdMktemp) TempFile(ctx context.Context, dir, hint string) (string, error) {
	return runMktemp(ctx, "-t", hint)
}

// runMktemp invokes mktemp and returns the single path it prints.
// mktemp failures propagate: unlike the best-effort compose operations,
// a missing temp path leaves the X11 helper with nothing to work with.
func runMktemp(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "mktemp", args...).Output()
	if err != nil {
		if _, lookErr := exec.LookPath("mktemp"); lookErr != nil {
			return "", model.WrapCLIError(
				model.ExitMissingTool,
				"mktemp is not installed",
				lookErr,
			)
		}
		return "", model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("mktemp %v failed", args),
			err,
		)
	}
	return strings.TrimSpace(string(out)), nil
}
