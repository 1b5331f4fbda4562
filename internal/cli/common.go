// common.go holds the flag set and construction plumbing shared by the
// container subcommands. Every container command resolves the same
// context directory, profile, and extension file lists, so the wiring
// lives here once.
package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/isaaclab-tools/labctl/internal/container"
	"github.com/isaaclab-tools/labctl/internal/docker"
	"github.com/isaaclab-tools/labctl/internal/model"
)

// containerFlags are the flags shared by all container subcommands.
type containerFlags struct {
	// contextDir is the docker context directory. Empty means
	// auto-detect (see resolveContextDir).
	contextDir string

	// profile selects the container configuration variant. Empty falls
	// back to the settings file default, then to "base".
	profile string

	// composeFiles and envFiles extend the base argument lists.
	composeFiles []string
	envFiles     []string
}

// addContainerFlags registers the shared flags on a subcommand.
func addContainerFlags(cmd *cobra.Command, flags *containerFlags) {
	cmd.Flags().StringVar(&flags.contextDir, "context", "", "Docker context directory (default: ./docker if present, else .)")
	cmd.Flags().StringVarP(&flags.profile, "profile", "p", "", "Container profile (default: from labctl.jsonc, else \"base\")")
	cmd.Flags().StringArrayVar(&flags.composeFiles, "file", nil, "Additional compose file (repeatable, merged after docker-compose.yaml)")
	cmd.Flags().StringArrayVar(&flags.envFiles, "env-file", nil, "Additional env file (repeatable, merged after the profile env files)")
}

// resolveContextDir picks the docker context directory. An explicit
// --context wins; otherwise a ./docker directory containing
// docker-compose.yaml is preferred (the Isaac Lab repository layout),
// falling back to the current directory.
func resolveContextDir(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "failed to determine working directory", err)
	}

	nested := filepath.Join(cwd, "docker")
	if _, err := os.Stat(filepath.Join(nested, "docker-compose.yaml")); err == nil {
		return nested, nil
	}
	return cwd, nil
}

// resolveProfile picks the profile: the --profile flag wins, then the
// settings file default, then base. Alias normalization happens inside
// container.New.
func resolveProfile(flagValue, contextDir string) (model.Profile, error) {
	if flagValue != "" {
		return model.Profile(flagValue), nil
	}

	settings, err := container.LoadSettings(contextDir)
	if err != nil {
		return "", err
	}
	return model.Profile(settings.Profile), nil
}

// newContainerInterface connects to the Docker daemon and builds the
// container interface from the shared flags. The returned closer releases
// the Docker client and must be deferred by the caller.
func newContainerInterface(ctx context.Context, flags *containerFlags) (*container.Interface, func(), error) {
	contextDir, err := resolveContextDir(flags.contextDir)
	if err != nil {
		return nil, nil, err
	}
	VerboseLog("Using context directory %s", contextDir)

	profile, err := resolveProfile(flags.profile, contextDir)
	if err != nil {
		return nil, nil, err
	}

	cli, err := docker.NewClient()
	if err != nil {
		return nil, nil, err
	}
	if err := cli.Ping(ctx); err != nil {
		_ = cli.Close()
		return nil, nil, err
	}
	VerboseLog("Connected to Docker daemon")

	c, err := container.New(container.Options{
		ContextDir:   contextDir,
		Profile:      profile,
		ComposeFiles: flags.composeFiles,
		EnvFiles:     flags.envFiles,
		Engine:       cli,
	})
	if err != nil {
		_ = cli.Close()
		return nil, nil, err
	}

	return c, func() { _ = cli.Close() }, nil
}
