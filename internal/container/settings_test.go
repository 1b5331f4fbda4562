package container

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaaclab-tools/labctl/internal/model"
)

// TestLoadSettingsMissingFile verifies that an absent settings file
// yields empty settings rather than an error.
func TestLoadSettingsMissingFile(t *testing.T) {
	settings, err := LoadSettings(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, settings.Profile)
	assert.Empty(t, settings.ComposeFiles)
	assert.Empty(t, settings.EnvFiles)
}

// TestLoadSettingsWithComments verifies that JSONC comments and trailing
// commas are accepted, matching the devcontainer.json convention.
func TestLoadSettingsWithComments(t *testing.T) {
	dir := t.TempDir()
	contents := `{
	// default profile for this checkout
	"profile": "ros2",
	"composeFiles": [
		"docker-compose.cluster.yaml", // merged after the base file
	],
	"envFiles": [".env.cluster"],
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFileName), []byte(contents), 0644))

	settings, err := LoadSettings(dir)
	require.NoError(t, err)

	assert.Equal(t, "ros2", settings.Profile)
	assert.Equal(t, []string{"docker-compose.cluster.yaml"}, settings.ComposeFiles)
	assert.Equal(t, []string{".env.cluster"}, settings.EnvFiles)
}

// TestLoadSettingsMalformed verifies the configuration-error taxonomy for
// a broken settings file.
func TestLoadSettingsMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFileName), []byte(`{"profile": [}`), 0644))

	_, err := LoadSettings(dir)
	require.Error(t, err)

	cliErr, ok := err.(*model.CLIError)
	require.True(t, ok)
	assert.Equal(t, model.ExitConfigError, cliErr.Code)
}

// TestSettingsExtensionsPrecedeCallerExtensions verifies the documented
// accumulation order: base file, settings extensions, command-line
// extensions.
func TestSettingsExtensionsPrecedeCallerExtensions(t *testing.T) {
	dir := t.TempDir()
	contents := `{"composeFiles": ["settings.yaml"], "envFiles": [".env.settings"]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFileName), []byte(contents), 0644))
	for _, name := range []string{".env.base", ".env.settings", ".env.cli"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("A=1\n"), 0644))
	}

	c, err := New(Options{
		ContextDir:   dir,
		Profile:      "base",
		ComposeFiles: []string{"cli.yaml"},
		EnvFiles:     []string{".env.cli"},
		Engine:       fakeEngine{},
		Out:          &bytes.Buffer{},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"--file", "docker-compose.yaml",
		"--file", "settings.yaml",
		"--file", "cli.yaml",
	}, c.invocation.Files)
	assert.Equal(t, []string{
		"--env-file", ".env.base",
		"--env-file", ".env.settings",
		"--env-file", ".env.cli",
	}, c.invocation.EnvFiles)
}
