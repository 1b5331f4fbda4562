// compose.go implements docker compose invocations as child processes.
//
// Compose operations deliberately shell out to the docker CLI instead of
// reimplementing compose semantics: merging multiple --file arguments,
// --profile filtering, and --env-file substitution are exactly the
// behaviors being delegated. The Invocation value carries everything one
// call needs — working directory, the three ordered argument lists, and
// an immutable set of environment overrides — so no global process state
// is mutated between calls.
package docker

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/isaaclab-tools/labctl/internal/model"
)

// Invocation describes one docker compose call. Values are assembled by
// the container interface once at startup and then treated as read-only;
// every method builds a fresh argument slice so an Invocation can be
// reused across build/up/down/config.
type Invocation struct {
	// Dir is the working directory for the compose process. Relative
	// paths inside compose files resolve against it.
	Dir string

	// Files, Profiles, and EnvFiles are pre-tokenized argument lists
	// ("--file x.yaml", "--profile base", "--env-file .env.base").
	// Order matters: docker compose merges later files over earlier ones.
	Files    []string
	Profiles []string
	EnvFiles []string

	// Env holds environment overrides applied on top of the inherited
	// process environment for this invocation only. Used for the darwin
	// platform shim and the X11 auth file variables referenced by
	// x11.yaml.
	Env map[string]string
}

// Build runs "docker compose ... build [services...]", streaming build
// progress to the given writers. Only Files and EnvFiles participate;
// profile filters do not apply to an explicit service list.
func (inv Invocation) Build(ctx context.Context, stdout, stderr io.Writer, services ...string) error {
	args := append([]string{"compose"}, inv.Files...)
	args = append(args, inv.EnvFiles...)
	args = append(args, "build")
	args = append(args, services...)
	return inv.run(ctx, stdout, stderr, args)
}

// Up runs "docker compose ... up --detach --build --remove-orphans" with
// the full file/profile/env-file argument set. --remove-orphans drops
// containers left over from a previous profile selection.
func (inv Invocation) Up(ctx context.Context, stdout, stderr io.Writer) error {
	args := inv.composeArgs()
	args = append(args, "up", "--detach", "--build", "--remove-orphans")
	return inv.run(ctx, stdout, stderr, args)
}

// Down runs "docker compose ... down", stopping and removing the
// containers and networks of the selected profile.
func (inv Invocation) Down(ctx context.Context, stdout, stderr io.Writer) error {
	args := inv.composeArgs()
	args = append(args, "down")
	return inv.run(ctx, stdout, stderr, args)
}

// Config runs "docker compose ... config", rendering the merged
// configuration to stdout, or to outputPath when non-empty.
func (inv Invocation) Config(ctx context.Context, stdout, stderr io.Writer, outputPath string) error {
	args := inv.composeArgs()
	args = append(args, "config")
	if outputPath != "" {
		args = append(args, "--output", outputPath)
	}
	return inv.run(ctx, stdout, stderr, args)
}

// composeArgs assembles the shared "compose --file ... --profile ...
// --env-file ..." prefix in the order docker compose expects.
func (inv Invocation) composeArgs() []string {
	args := make([]string, 0, 1+len(inv.Files)+len(inv.Profiles)+len(inv.EnvFiles))
	args = append(args, "compose")
	args = append(args, inv.Files...)
	args = append(args, inv.Profiles...)
	args = append(args, inv.EnvFiles...)
	return args
}

// run executes "docker" with the given arguments. The child inherits the
// parent environment plus the invocation's overrides. The exit code is
// surfaced as an error; the caller decides whether it is fatal.
func (inv Invocation) run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Dir = inv.Dir
	cmd.Env = mergeEnv(os.Environ(), inv.Env)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("docker %v failed", args[:2]),
			err,
		)
	}
	return nil
}

// mergeEnv appends overrides to a copy of the base environment in sorted
// key order. Later entries win in exec's environment handling, so
// overrides take precedence over inherited values. Sorting keeps the
// child environment deterministic for tests and debugging.
func mergeEnv(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, len(base), len(base)+len(overrides))
	copy(env, base)
	for _, k := range keys {
		env = append(env, k+"="+overrides[k])
	}
	return env
}
