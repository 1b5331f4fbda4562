package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNormalizeAlias verifies that the "isaaclab" alias resolves to "base"
// and that the derived container and image names are identical for both.
// "isaaclab" is commonly passed because it matches the project name, but
// it is not a real profile.
func TestNormalizeAlias(t *testing.T) {
	aliased := Profile("isaaclab").Normalize()
	base := Profile("base").Normalize()

	assert.Equal(t, ProfileBase, aliased)
	assert.Equal(t, base.ContainerName(), aliased.ContainerName())
	assert.Equal(t, base.ImageName(), aliased.ImageName())
}

// TestNormalizeEmpty verifies that an empty profile defaults to base.
func TestNormalizeEmpty(t *testing.T) {
	assert.Equal(t, ProfileBase, Profile("").Normalize())
}

// TestNormalizePassthrough verifies that real profile names are returned
// unchanged by Normalize.
func TestNormalizePassthrough(t *testing.T) {
	assert.Equal(t, Profile("ros2"), Profile("ros2").Normalize())
}

// TestDerivedNames verifies the container/image naming scheme for a
// non-base profile.
func TestDerivedNames(t *testing.T) {
	p := Profile("ros2")
	assert.Equal(t, "isaac-lab-ros2", p.ContainerName())
	assert.Equal(t, "isaac-lab-ros2:latest", p.ImageName())
	assert.False(t, p.IsBase())
	assert.True(t, ProfileBase.IsBase())
}

// TestValidate checks accepted and rejected profile names. Profile names
// become Docker name segments, so uppercase, spaces, and leading
// separators are rejected.
func TestValidate(t *testing.T) {
	valid := []string{"base", "ros2", "my-profile", "my_profile", "a"}
	for _, name := range valid {
		require.NoError(t, Profile(name).Validate(), "profile %q should be valid", name)
	}

	invalid := []string{"", "Base", "my profile", "-leading", "trailing-", "a--b"}
	for _, name := range invalid {
		assert.Error(t, Profile(name).Validate(), "profile %q should be invalid", name)
	}
}

// TestCLIErrorUnwrap verifies that CLIError participates in Go error
// wrapping and preserves its exit code and hint.
func TestCLIErrorUnwrap(t *testing.T) {
	inner := NewCLIError(ExitConfigError, "bad env file list")
	wrapped := WrapCLIError(ExitGeneralError, "start failed", inner)

	assert.Equal(t, ExitGeneralError, wrapped.Code)
	assert.ErrorIs(t, wrapped, inner)
	assert.Contains(t, wrapped.Error(), "start failed")
	assert.Contains(t, wrapped.Error(), "bad env file list")

	hinted := NewCLIError(ExitMissingTool, "xauth is not installed").
		WithHint("install it with 'apt install xauth'")
	assert.Equal(t, "install it with 'apt install xauth'", hinted.Hint)
}
