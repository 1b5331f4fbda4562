package x11

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaaclab-tools/labctl/internal/model"
	"github.com/isaaclab-tools/labctl/internal/statefile"
)

// fakeAuthority stands in for xauth: it records cookie writes and stamps
// a marker into the target file.
type fakeAuthority struct {
	writes int
}

func (f *fakeAuthority) Available() error { return nil }

func (f *fakeAuthority) WriteCookie(_ context.Context, path string) error {
	f.writes++
	return os.WriteFile(path, []byte(fmt.Sprintf("cookie-%d", f.writes)), 0600)
}

// fakeCreator stands in for mktemp, handing out sequentially numbered
// paths under a test directory.
type fakeCreator struct {
	root string
	seq  int
}

func (f *fakeCreator) TempDir(context.Context) (string, error) {
	f.seq++
	dir := filepath.Join(f.root, fmt.Sprintf("tmp%d", f.seq))
	return dir, os.MkdirAll(dir, 0755)
}

func (f *fakeCreator) TempFile(_ context.Context, dir, hint string) (string, error) {
	f.seq++
	path := filepath.Join(dir, fmt.Sprintf("%d.%s", f.seq, hint))
	return path, os.WriteFile(path, nil, 0600)
}

// newTestHelper builds a Helper with fake tooling, a scripted stdin, and
// a captured stdout. The returned buffer holds everything the helper
// printed.
func newTestHelper(t *testing.T, input string, interactive bool) (*Helper, *fakeAuthority, *bytes.Buffer) {
	t.Helper()

	state, err := statefile.Load(filepath.Join(t.TempDir(), ".container.cfg"))
	require.NoError(t, err)

	auth := &fakeAuthority{}
	out := &bytes.Buffer{}
	h := &Helper{
		state:      state,
		tmp:        &fakeCreator{root: t.TempDir()},
		auth:       auth,
		in:         strings.NewReader(input),
		out:        out,
		isTerminal: func() bool { return interactive },
	}
	return h, auth, out
}

// TestCheckPromptsOnceAndPersistsYes verifies that answering "y" to the
// first-run prompt persists "1", activates the overlay, and that a second
// Check reports the stored setting instead of re-prompting.
func TestCheckPromptsOnceAndPersistsYes(t *testing.T) {
	h, _, out := newTestHelper(t, "y\n", true)
	ctx := context.Background()

	files, env, err := h.Check(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"--file", "x11.yaml"}, files)
	require.Contains(t, env, EnvTmpXauth)
	require.Contains(t, env, EnvTmpDir)
	assert.FileExists(t, env[EnvTmpXauth])
	assert.Equal(t, filepath.Dir(env[EnvTmpXauth]), env[EnvTmpDir])

	value, ok := h.state.Get("X11", "X11_FORWARDING_ENABLED")
	require.True(t, ok)
	assert.Equal(t, "1", value)

	// Second call: stdin is exhausted, so a re-prompt would persist "0".
	// The stored "1" must survive and the output must show the hint line.
	out.Reset()
	files, _, err = h.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"--file", "x11.yaml"}, files)
	assert.Contains(t, out.String(), "configured as '1'")
	assert.NotContains(t, out.String(), "Would you like to enable it?")
}

// TestCheckUppercaseYes verifies that "Y" also enables forwarding.
func TestCheckUppercaseYes(t *testing.T) {
	h, _, _ := newTestHelper(t, "Y\n", true)

	files, _, err := h.Check(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, files)

	value, _ := h.state.Get("X11", "X11_FORWARDING_ENABLED")
	assert.Equal(t, "1", value)
}

// TestCheckAnyOtherAnswerDisables verifies the default-deny prompt: any
// answer other than y/Y persists "0" and returns nothing.
func TestCheckAnyOtherAnswerDisables(t *testing.T) {
	for _, answer := range []string{"n\n", "yes\n", "\n", ""} {
		h, auth, _ := newTestHelper(t, answer, true)

		files, env, err := h.Check(context.Background())
		require.NoError(t, err, "answer %q", answer)

		assert.Nil(t, files, "answer %q", answer)
		assert.Nil(t, env, "answer %q", answer)
		assert.Zero(t, auth.writes, "answer %q", answer)

		value, ok := h.state.Get("X11", "X11_FORWARDING_ENABLED")
		require.True(t, ok)
		assert.Equal(t, "0", value, "answer %q", answer)
	}
}

// TestCheckNonInteractiveDefaultsDisabled verifies that without a TTY the
// prompt is skipped entirely and forwarding is persisted as disabled.
func TestCheckNonInteractiveDefaultsDisabled(t *testing.T) {
	h, _, out := newTestHelper(t, "y\n", false)

	files, _, err := h.Check(context.Background())
	require.NoError(t, err)

	assert.Nil(t, files)
	assert.NotContains(t, out.String(), "Would you like to enable it?")

	value, _ := h.state.Get("X11", "X11_FORWARDING_ENABLED")
	assert.Equal(t, "0", value)
}

// TestConfigureReusesExistingFile verifies that a persisted auth file
// still on disk is reused rather than replaced.
func TestConfigureReusesExistingFile(t *testing.T) {
	h, auth, _ := newTestHelper(t, "", true)
	ctx := context.Background()

	first, err := h.Configure(ctx)
	require.NoError(t, err)
	second, err := h.Configure(ctx)
	require.NoError(t, err)

	assert.Equal(t, first[EnvTmpXauth], second[EnvTmpXauth])
	assert.Equal(t, 1, auth.writes)
}

// TestCleanupThenConfigureYieldsNewPath covers the regeneration contract:
// after Cleanup, Configure must produce a new, distinct auth file, and
// Cleanup must be idempotent.
func TestCleanupThenConfigureYieldsNewPath(t *testing.T) {
	h, _, _ := newTestHelper(t, "", true)
	ctx := context.Background()

	first, err := h.Configure(ctx)
	require.NoError(t, err)
	firstPath := first[EnvTmpXauth]

	require.NoError(t, h.Cleanup())
	assert.NoFileExists(t, firstPath)
	_, ok := h.state.Get("X11", "__ISAACLAB_TMP_XAUTH")
	assert.False(t, ok)

	// Cleanup twice in a row must not fail.
	require.NoError(t, h.Cleanup())

	second, err := h.Configure(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, firstPath, second[EnvTmpXauth])
	assert.FileExists(t, second[EnvTmpXauth])
}

// TestRefreshRewritesCookieInPlace verifies that Refresh keeps the
// persisted path stable while replacing the file's contents.
func TestRefreshRewritesCookieInPlace(t *testing.T) {
	h, auth, _ := newTestHelper(t, "", true)
	ctx := context.Background()

	env, err := h.Configure(ctx)
	require.NoError(t, err)
	path := env[EnvTmpXauth]

	require.NoError(t, h.Refresh(ctx))

	kept, ok := h.state.Get("X11", "__ISAACLAB_TMP_XAUTH")
	require.True(t, ok)
	assert.Equal(t, path, kept)
	assert.Equal(t, 2, auth.writes)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cookie-2", string(contents))
}

// TestRefreshInconsistentState verifies the fatal path: forwarding
// enabled but no auth file path ever persisted.
func TestRefreshInconsistentState(t *testing.T) {
	h, _, _ := newTestHelper(t, "", true)
	require.NoError(t, h.state.Set("X11", "X11_FORWARDING_ENABLED", "1"))

	err := h.Refresh(context.Background())
	require.Error(t, err)

	cliErr, ok := err.(*model.CLIError)
	require.True(t, ok)
	assert.Equal(t, model.ExitInconsistentState, cliErr.Code)
	assert.Contains(t, cliErr.Hint, "labctl start")
}

// TestRefreshDisabledNoPath verifies the quiet no-op: forwarding disabled
// and nothing persisted.
func TestRefreshDisabledNoPath(t *testing.T) {
	h, auth, out := newTestHelper(t, "", true)
	require.NoError(t, h.state.Set("X11", "X11_FORWARDING_ENABLED", "0"))

	require.NoError(t, h.Refresh(context.Background()))
	assert.Zero(t, auth.writes)
	assert.Contains(t, out.String(), "No action taken")
}

// TestStripWildcardFamily verifies the cookie munging that makes the
// cookie valid from any hostname.
func TestStripWildcardFamily(t *testing.T) {
	in := "ffff 0016 6d79686f7374 0001 30 0012 4d49542d4d414749432d434f4f4b49452d31"
	assert.NotContains(t, stripWildcardFamily(in), "ffff")
	assert.Equal(t, "abc123", stripWildcardFamily("abcffff123"))
}
