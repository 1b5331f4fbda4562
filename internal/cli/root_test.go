package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCommandRegistersSubcommands verifies that all subcommands are
// wired onto the root command.
func TestRootCommandRegistersSubcommands(t *testing.T) {
	rootCmd := NewRootCommand()

	expected := []string{"start", "enter", "stop", "copy", "config", "status", "x11"}
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, names[name], "subcommand %q should be registered", name)
	}
}

// TestResolveContextDirExplicit verifies that an explicit --context value
// is used verbatim.
func TestResolveContextDirExplicit(t *testing.T) {
	dir, err := resolveContextDir("/some/where")
	require.NoError(t, err)
	assert.Equal(t, "/some/where", dir)
}

// TestResolveContextDirPrefersDockerSubdir verifies the Isaac Lab layout
// detection: a ./docker directory containing docker-compose.yaml wins
// over the current directory.
func TestResolveContextDirPrefersDockerSubdir(t *testing.T) {
	root := t.TempDir()
	dockerDir := filepath.Join(root, "docker")
	require.NoError(t, os.MkdirAll(dockerDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dockerDir, "docker-compose.yaml"), []byte("services: {}\n"), 0644))

	t.Chdir(root)

	cwd, err := os.Getwd()
	require.NoError(t, err)

	dir, err := resolveContextDir("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "docker"), dir)
}

// TestResolveContextDirFallsBackToCwd verifies the fallback when no
// docker subdirectory exists.
func TestResolveContextDirFallsBackToCwd(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)

	cwd, err := os.Getwd()
	require.NoError(t, err)

	dir, err := resolveContextDir("")
	require.NoError(t, err)
	assert.Equal(t, cwd, dir)
}

// TestX11CommandHasSubcommands verifies the x11 command group wiring.
func TestX11CommandHasSubcommands(t *testing.T) {
	cmd := NewX11Command()

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["refresh"])
	assert.True(t, names["cleanup"])
}
