package discover

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures a Run's notification.
type recorder struct {
	notified int
	items    []*Item
}

func (r *recorder) CollectionFinished(items []*Item) {
	r.notified++
	r.items = items
}

// writeFile writes a fixture file under dir, creating parent directories.
func writeFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRun_MissingPathIsUsageError(t *testing.T) {
	t.Parallel()
	r := &recorder{}
	code := Run(context.Background(), filepath.Join(t.TempDir(), "nope"), r)
	assert.Equal(t, ExitUsageError, code)
	assert.Equal(t, 1, r.notified)
	assert.Empty(t, r.items)
}

func TestRun_EmptyDirIsNoTestsCollected(t *testing.T) {
	t.Parallel()
	r := &recorder{}
	code := Run(context.Background(), t.TempDir(), r)
	assert.Equal(t, ExitNoTestsCollected, code)
	assert.Equal(t, 1, r.notified)
	assert.Empty(t, r.items)
}

func TestRun_FileWithoutTestsIsNoTestsCollected(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "empty_test.py", "x = 1\n")

	r := &recorder{}
	code := Run(context.Background(), dir, r)
	assert.Equal(t, ExitNoTestsCollected, code)
	assert.Equal(t, 1, r.notified)
}

func TestRun_CollectsInLexicalOrder(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "b_test.py", "def test_b():\n    pass\n")
	writeFile(t, dir, "a_test.py", "def test_a():\n    pass\n")
	writeFile(t, dir, "test_c.py", "def test_c():\n    pass\n")

	r := &recorder{}
	code := Run(context.Background(), dir, r)
	require.Equal(t, ExitOK, code)
	require.Len(t, r.items, 3)
	assert.Equal(t, "test_a", r.items[0].Name())
	assert.Equal(t, "test_b", r.items[1].Name())
	assert.Equal(t, "test_c", r.items[2].Name())
}

func TestRun_ModuleNamesAreRootRelativePaths(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "top_test.py", "def test_top():\n    pass\n")
	writeFile(t, dir, filepath.Join("sub", "deep_test.py"), "def test_deep():\n    pass\n")

	r := &recorder{}
	code := Run(context.Background(), dir, r)
	require.Equal(t, ExitOK, code)
	require.Len(t, r.items, 2)

	names := []string{r.items[0].Parent().Name(), r.items[1].Parent().Name()}
	assert.Contains(t, names, "top_test.py")
	assert.Contains(t, names, "sub/deep_test.py")
}

func TestRun_SkipsHiddenAndPycacheDirs(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "ok_test.py", "def test_ok():\n    pass\n")
	writeFile(t, dir, filepath.Join(".hidden", "skip_test.py"), "def test_hidden():\n    pass\n")
	writeFile(t, dir, filepath.Join("__pycache__", "cache_test.py"), "def test_cached():\n    pass\n")

	r := &recorder{}
	code := Run(context.Background(), dir, r)
	require.Equal(t, ExitOK, code)
	require.Len(t, r.items, 1)
	assert.Equal(t, "test_ok", r.items[0].Name())
}

func TestRun_IgnoresNonTestFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "sample_test.py", "def test_ok():\n    pass\n")
	writeFile(t, dir, "conftest.py", "def test_not_collected():\n    pass\n")
	writeFile(t, dir, "helpers.py", "def test_helper():\n    pass\n")
	writeFile(t, dir, "notes.txt", "not python\n")

	r := &recorder{}
	code := Run(context.Background(), dir, r)
	require.Equal(t, ExitOK, code)
	require.Len(t, r.items, 1)
}

func TestRun_SingleFilePath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeFile(t, dir, "solo_test.py", "def test_solo():\n    pass\n")

	r := &recorder{}
	code := Run(context.Background(), path, r)
	require.Equal(t, ExitOK, code)
	require.Len(t, r.items, 1)
	assert.Equal(t, "solo_test.py", r.items[0].Parent().Name())
}

func TestRun_SyntaxErrorInterruptsButKeepsCollecting(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "bad_test.py", "def test_broken(:\n")
	writeFile(t, dir, "good_test.py", "def test_good():\n    pass\n")

	r := &recorder{}
	code := Run(context.Background(), dir, r)
	assert.Equal(t, ExitInterrupted, code)
	// The healthy file is still collected and the listener still notified.
	require.Equal(t, 1, r.notified)
	require.Len(t, r.items, 1)
	assert.Equal(t, "test_good", r.items[0].Name())
}

func TestIsTestFile(t *testing.T) {
	t.Parallel()
	cases := map[string]bool{
		"test_a.py":    true,
		"a_test.py":    true,
		"test_.py":     true,
		"a.py":         false,
		"conftest.py":  false,
		"test_a.txt":   false,
		"atest.py":     false,
		"test_a.py.go": false,
	}
	for name, want := range cases {
		assert.Equal(t, want, isTestFile(name), "name %s", name)
	}
}

func TestExitCode_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "OK", ExitOK.String())
	assert.Equal(t, "tests failed", ExitTestsFailed.String())
	assert.Equal(t, "collection interrupted", ExitInterrupted.String())
	assert.Equal(t, "internal error", ExitInternalError.String())
	assert.Equal(t, "usage error", ExitUsageError.String())
	assert.Equal(t, "no tests collected", ExitNoTestsCollected.String())
	assert.Equal(t, "exit code 42", ExitCode(42).String())
}
