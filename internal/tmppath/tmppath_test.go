package tmppath

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewSelectsDialect verifies the one-time dialect selection. On
// non-darwin platforms this must be the GNU implementation; the BSD
// branch is covered implicitly by the type switch.
func TestNewSelectsDialect(t *testing.T) {
	c := New()
	if runtime.GOOS == "darwin" {
		assert.IsType(t, bsdMktemp{}, c)
	} else {
		assert.IsType(t, gnuMktemp{}, c)
	}
}

// TestTempDir exercises the real mktemp binary. Skipped where mktemp is
// unavailable (minimal CI images).
func TestTempDir(t *testing.T) {
	requireMktemp(t)

	dir, err := New().TempDir(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// TestTempFileInDir verifies the file lands in the requested directory
// with the hint embedded in the name, and that two calls never collide.
func TestTempFileInDir(t *testing.T) {
	requireMktemp(t)
	if runtime.GOOS == "darwin" {
		// BSD mktemp places -t files under $TMPDIR, not a caller-chosen
		// directory, so the placement assertion only holds for GNU.
		t.Skip("directory placement is a GNU mktemp behavior")
	}

	dir := t.TempDir()
	c := New()

	first, err := c.TempFile(context.Background(), dir, "xauth")
	require.NoError(t, err)
	second, err := c.TempFile(context.Background(), dir, "xauth")
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(first))
	assert.True(t, strings.HasSuffix(first, ".xauth"))
	assert.NotEqual(t, first, second)

	_, err = os.Stat(first)
	assert.NoError(t, err)
}

// requireMktemp skips the test when the mktemp binary is absent.
func requireMktemp(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("mktemp"); err != nil {
		t.Skip("mktemp not available")
	}
}
