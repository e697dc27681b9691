package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsCmd_ListsBuildsPerPlatform(t *testing.T) {
	dir := projectDir(t, "")
	cmd, stdout, _ := newTestCmd(t)
	cmd.SetArgs([]string{"options", dir, "--quiet"})

	require.NoError(t, cmd.Execute())
	out := stdout.String()
	assert.Contains(t, out, "Tab: Android Regression")
	assert.Contains(t, out, "Platform")
	assert.Contains(t, out, "Builds")
	assert.Contains(t, out, "5.2, 5.1")
	assert.Contains(t, out, "iOS")
}

func TestOptionsCmd_NotLoadedTab(t *testing.T) {
	dir := projectDir(t, "")
	require.NoError(t, os.Remove(filepath.Join(dir, "ios.csv")))

	cmd, stdout, _ := newTestCmd(t)
	cmd.SetArgs([]string{"options", dir, "--quiet"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitPartialFailure, exitCode(err))
	assert.Contains(t, stdout.String(), "not loaded:")
}

func TestJoinOrDash(t *testing.T) {
	assert.Equal(t, "-", joinOrDash(nil))
	assert.Equal(t, "a, b", joinOrDash([]string{"a", "b"}))
}
