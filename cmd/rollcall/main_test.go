package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/jmorrow/rollcall"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFormat(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateFormat("json"))
	assert.NoError(t, validateFormat("text"))
	assert.Error(t, validateFormat("yaml"))
	assert.Error(t, validateFormat(""))
}

func TestResolveTargetPath_DefaultsToCwd(t *testing.T) {
	t.Parallel()
	got, err := resolveTargetPath(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestFirstLine(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", firstLine(""))
	assert.Equal(t, "one", firstLine("one\ntwo"))
	assert.Equal(t, "two", firstLine("\n  \ntwo\nthree"))
	assert.Equal(t, "padded", firstLine("  padded  "))
}

func TestFormatTreesText(t *testing.T) {
	t.Parallel()
	trees := []rollcall.ModuleTree{
		{
			Type:  rollcall.KindModule,
			Title: "a_test.py",
			Doc:   "Module doc.\nSecond line.",
			Children: []rollcall.ModuleTree{
				{
					Type:  rollcall.KindClass,
					Title: "TestOne",
					Children: []rollcall.ModuleTree{
						{Type: rollcall.KindFunction, Title: "test_x", Doc: "Case x.", Src: "def test_x(self):\n    pass"},
					},
				},
			},
		},
	}

	var buf bytes.Buffer
	formatTreesText(&buf, trees)

	want := "Module a_test.py - Module doc.\n" +
		"  Class TestOne\n" +
		"    Function test_x - Case x.\n"
	assert.Equal(t, want, buf.String())
}

func TestFormatRunsText(t *testing.T) {
	t.Parallel()
	collected := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	runs := []CLIRun{
		{ID: 1, Path: "/tmp/suites", CollectedAt: collected, ModuleCount: 2, TestCount: 7},
	}

	var buf bytes.Buffer
	formatRunsText(&buf, runs)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "/tmp/suites")
	assert.Contains(t, out, "2026-08-29 12:00:00")
	assert.Contains(t, out, "7")
}
