package container

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/isaaclab-tools/labctl/internal/docker"
	"github.com/isaaclab-tools/labctl/internal/dotenv"
	"github.com/isaaclab-tools/labctl/internal/model"
	"github.com/isaaclab-tools/labctl/internal/statefile"
)

// stateFileName is the per-context state file shared with the X11 helper.
const stateFileName = ".container.cfg"

// baseComposeFile and baseEnvFile are always first in their argument
// lists; profile and caller extensions append after them so that docker
// compose's later-overrides-earlier merge favors the extensions.
const (
	baseComposeFile = "docker-compose.yaml"
	baseEnvFile     = ".env.base"
)

// baseBuildService is the service built unconditionally before "up".
// Profile images layer on top of the base image, so the base must exist
// (and be current) first.
const baseBuildService = "isaac-lab-base"

// dotVarIsaacLabPath is the env-file variable naming the Isaac Lab
// checkout inside the container; artifact paths are resolved against it.
const dotVarIsaacLabPath = "DOCKER_ISAACLAB_PATH"

// Engine is the subset of Docker engine queries the interface needs.
// Satisfied by *docker.Client; faked in tests.
type Engine interface {
	ContainerStatus(ctx context.Context, name string) (string, error)
	ImageExists(ctx context.Context, ref string) (bool, error)
}

// Options configures New.
type Options struct {
	// ContextDir is the directory holding docker-compose.yaml, the env
	// files, and the state file. Required.
	ContextDir string

	// Profile selects the container configuration variant. Empty and
	// aliased values are normalized ("" → base, "isaaclab" → base).
	Profile model.Profile

	// ComposeFiles and EnvFiles extend the base argument lists, in call
	// order, after any extensions from the labctl.jsonc settings file.
	ComposeFiles []string
	EnvFiles     []string

	// State optionally supplies an externally constructed state store.
	// When nil, the state file inside ContextDir is loaded.
	State *statefile.File

	// Engine performs container/image status queries. Required for
	// IsRunning, ImageExists, Enter, Stop, and Copy.
	Engine Engine

	// Out receives informational messages. Defaults to os.Stdout.
	Out io.Writer
}

// Interface manages one profile's container. Construct via New; the
// resolved argument lists and environment overrides are computed once and
// never mutated afterwards.
type Interface struct {
	contextDir string
	profile    model.Profile
	state      *statefile.File
	engine     Engine
	out        io.Writer

	// invocation carries the resolved compose argument lists and the
	// platform environment overrides for every compose call.
	invocation docker.Invocation

	// dotVars is the merged view of all referenced env files,
	// later files overriding earlier ones.
	dotVars map[string]string
}

// New resolves the profile and builds the container interface: argument
// lists, merged dot-env variables, state store, and the platform
// environment shim.
func New(opts Options) (*Interface, error) {
	profile := opts.Profile.Normalize()
	if err := profile.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "invalid profile", err)
	}

	state := opts.State
	if state == nil {
		var err error
		state, err = statefile.Load(filepath.Join(opts.ContextDir, stateFileName))
		if err != nil {
			return nil, model.WrapCLIError(model.ExitConfigError, "failed to load state file", err)
		}
	}

	settings, err := LoadSettings(opts.ContextDir)
	if err != nil {
		return nil, err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	c := &Interface{
		contextDir: opts.ContextDir,
		profile:    profile,
		state:      state,
		engine:     opts.Engine,
		out:        out,
		invocation: docker.Invocation{
			Dir:      opts.ContextDir,
			Files:    composeFileArgs(settings.ComposeFiles, opts.ComposeFiles),
			Profiles: []string{"--profile", profile.String()},
			EnvFiles: envFileArgs(profile, settings.EnvFiles, opts.EnvFiles),
			Env:      platformEnv(),
		},
	}

	if c.dotVars, err = c.parseDotVars(); err != nil {
		return nil, err
	}

	return c, nil
}

// composeFileArgs builds the ordered --file token list: the base compose
// file, then settings extensions, then caller extensions.
func composeFileArgs(fromSettings, fromCaller []string) []string {
	args := []string{"--file", baseComposeFile}
	for _, f := range fromSettings {
		args = append(args, "--file", f)
	}
	for _, f := range fromCaller {
		args = append(args, "--file", f)
	}
	return args
}

// envFileArgs builds the ordered --env-file token list: the base env
// file, the profile-specific env file for non-base profiles, then
// settings and caller extensions in call order.
func envFileArgs(profile model.Profile, fromSettings, fromCaller []string) []string {
	args := []string{"--env-file", baseEnvFile}
	if !profile.IsBase() {
		args = append(args, "--env-file", ".env."+profile.String())
	}
	for _, f := range fromSettings {
		args = append(args, "--env-file", f)
	}
	for _, f := range fromCaller {
		args = append(args, "--env-file", f)
	}
	return args
}

// platformEnv returns the environment overrides forced on every compose
// invocation. On macOS the Isaac Lab images only exist for linux/arm64,
// so the default platform is pinned; elsewhere Docker's native defaults
// apply.
func platformEnv() map[string]string {
	if runtime.GOOS == "darwin" {
		return map[string]string{"DOCKER_DEFAULT_PLATFORM": "linux/arm64"}
	}
	return nil
}

// parseDotVars merges every referenced env file into a flat map. The
// token list alternates flag and filename, so an odd length means the
// list was assembled incorrectly.
func (c *Interface) parseDotVars() (map[string]string, error) {
	tokens := c.invocation.EnvFiles
	if len(tokens)%2 != 0 {
		return nil, model.NewCLIError(model.ExitConfigError,
			"the env file parameters are configured incorrectly: expected an even number of arguments")
	}

	paths := make([]string, 0, len(tokens)/2)
	for i := 1; i < len(tokens); i += 2 {
		paths = append(paths, filepath.Join(c.contextDir, tokens[i]))
	}

	vars, err := dotenv.ParseFiles(paths...)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, "failed to parse env files", err)
	}
	return vars, nil
}

// Profile returns the normalized profile this interface manages.
func (c *Interface) Profile() model.Profile {
	return c.profile
}

// ContainerName returns the profile-derived container name.
func (c *Interface) ContainerName() string {
	return c.profile.ContainerName()
}

// State returns the shared state store, for wiring into the X11 helper.
func (c *Interface) State() *statefile.File {
	return c.state
}

// DotVars returns the merged env-file variables. The returned map is the
// interface's own; callers must not modify it.
func (c *Interface) DotVars() map[string]string {
	return c.dotVars
}

// IsRunning reports whether the profile's container status is exactly
// "running". Any other status — including a container that does not
// exist — counts as not running.
func (c *Interface) IsRunning(ctx context.Context) (bool, error) {
	status, err := c.engine.ContainerStatus(ctx, c.ContainerName())
	if err != nil {
		return false, err
	}
	return status == "running", nil
}

// ImageExists reports whether the profile's image is present locally.
func (c *Interface) ImageExists(ctx context.Context) (bool, error) {
	return c.engine.ImageExists(ctx, c.profile.ImageName())
}

// Start builds the base image and brings the container up in the
// background. extraComposeArgs and extraEnv extend this one invocation —
// the X11 helper contributes its overlay file and auth variables here
// without them becoming part of the interface's own configuration.
func (c *Interface) Start(ctx context.Context, extraComposeArgs []string, extraEnv map[string]string) error {
	fmt.Fprintf(c.out, "[INFO] Building the docker image and starting the container '%s' in the background...\n", c.ContainerName())

	// The base image builds from the base compose file alone: profile
	// overlays extend the base image, so it must be built first
	// regardless of which profile is starting.
	baseBuild := docker.Invocation{
		Dir:      c.contextDir,
		Files:    []string{"--file", baseComposeFile},
		EnvFiles: []string{"--env-file", baseEnvFile},
		Env:      c.invocation.Env,
	}
	if err := baseBuild.Build(ctx, c.out, os.Stderr, baseBuildService); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to build the base image", err)
	}

	inv := c.extendedInvocation(extraComposeArgs, extraEnv)
	if err := inv.Up(ctx, c.out, os.Stderr); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to start container '%s'", c.ContainerName()), err)
	}
	return nil
}

// Enter execs an interactive bash shell inside the running container,
// forwarding the host DISPLAY variable when one is set.
func (c *Interface) Enter(ctx context.Context) error {
	if err := c.requireRunning(ctx); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "[INFO] Entering the existing '%s' container in a bash session...\n", c.ContainerName())

	env := map[string]string{}
	if display, ok := os.LookupEnv("DISPLAY"); ok {
		env["DISPLAY"] = display
	}
	return docker.ExecShell(ctx, c.ContainerName(), env, "bash")
}

// Stop brings the container down. Stopping a container that is not
// running is an error, matching the interactive workflow: a failed stop
// usually means the user is operating on the wrong profile.
func (c *Interface) Stop(ctx context.Context, extraComposeArgs []string, extraEnv map[string]string) error {
	running, err := c.IsRunning(ctx)
	if err != nil {
		return err
	}
	if !running {
		return model.NewCLIError(model.ExitContainerNotRunning,
			fmt.Sprintf("can't stop container '%s' as it is not running", c.ContainerName()))
	}

	fmt.Fprintf(c.out, "[INFO] Stopping the launched docker container '%s'...\n", c.ContainerName())

	inv := c.extendedInvocation(extraComposeArgs, extraEnv)
	if err := inv.Down(ctx, c.out, os.Stderr); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to stop container '%s'", c.ContainerName()), err)
	}
	return nil
}

// artifact pairs a container-relative source with its host destination
// name under the artifacts directory.
type artifact struct {
	containerPath string
	hostName      string
}

// artifactSet lists what Copy extracts: training logs, the built
// documentation, and the data-storage directory.
var artifactSet = []artifact{
	{containerPath: "logs", hostName: "logs"},
	{containerPath: "docs/_build", hostName: "docs"},
	{containerPath: "data_storage", hostName: "data_storage"},
}

// Copy extracts the artifact directories from the running container into
// <outputDir>/artifacts, deleting any pre-existing destinations first.
// outputDir defaults to the context directory when empty.
//
// The running check happens before any filesystem mutation: when the
// container is down, Copy fails without creating a partial artifacts
// tree.
func (c *Interface) Copy(ctx context.Context, outputDir string) error {
	if err := c.requireRunning(ctx); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "[INFO] Copying artifacts from the '%s' container...\n", c.ContainerName())

	isaacLabPath, ok := c.dotVars[dotVarIsaacLabPath]
	if !ok {
		return model.NewCLIError(model.ExitConfigError,
			fmt.Sprintf("%s is not defined in the env files", dotVarIsaacLabPath))
	}

	if outputDir == "" {
		outputDir = c.contextDir
	}
	artifactsDir := filepath.Join(outputDir, "artifacts")
	if err := os.MkdirAll(artifactsDir, 0755); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create artifacts directory %s", artifactsDir), err)
	}

	for _, a := range artifactSet {
		// Container paths always use forward slashes regardless of the
		// host platform.
		src := path.Join(isaacLabPath, a.containerPath)
		dst := filepath.Join(artifactsDir, a.hostName)
		fmt.Fprintf(c.out, "  - %s -> %s\n", src, dst)

		// Remove stale copies so the result reflects the container alone.
		if err := os.RemoveAll(dst); err != nil {
			return model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to remove previous artifact copy %s", dst), err)
		}

		if err := docker.CopyFrom(ctx, c.ContainerName(), src, dst); err != nil {
			return err
		}
	}

	fmt.Fprintln(c.out, "[INFO] Finished copying the artifacts from the container.")
	return nil
}

// Config renders the merged compose configuration to stdout, or to
// outputPath when non-empty.
func (c *Interface) Config(ctx context.Context, outputPath string) error {
	fmt.Fprintln(c.out, "[INFO] Configuring the passed options into a YAML...")
	if err := c.invocation.Config(ctx, os.Stdout, os.Stderr, outputPath); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to render the merged compose configuration", err)
	}
	return nil
}

// requireRunning returns a CLIError when the container is not running.
func (c *Interface) requireRunning(ctx context.Context) error {
	running, err := c.IsRunning(ctx)
	if err != nil {
		return err
	}
	if !running {
		return model.NewCLIError(model.ExitContainerNotRunning,
			fmt.Sprintf("the container '%s' is not running", c.ContainerName()))
	}
	return nil
}

// extendedInvocation returns a copy of the base invocation with extra
// compose file tokens and environment overrides applied. The base
// invocation is never mutated.
func (c *Interface) extendedInvocation(extraComposeArgs []string, extraEnv map[string]string) docker.Invocation {
	inv := c.invocation

	if len(extraComposeArgs) > 0 {
		files := make([]string, 0, len(inv.Files)+len(extraComposeArgs))
		files = append(files, inv.Files...)
		files = append(files, extraComposeArgs...)
		inv.Files = files
	}

	if len(extraEnv) > 0 {
		env := make(map[string]string, len(inv.Env)+len(extraEnv))
		for k, v := range inv.Env {
			env[k] = v
		}
		for k, v := range extraEnv {
			env[k] = v
		}
		inv.Env = env
	}

	return inv
}
