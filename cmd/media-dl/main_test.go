package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func runArgs(t *testing.T, args ...string) error {
	t.Helper()
	app := newApp(context.Background())
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app.Run(append([]string{"media-dl"}, args...))
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var coder cli.ExitCoder
	require.ErrorAs(t, err, &coder)
	return coder.ExitCode()
}

func TestCLI_RequiresOneURL(t *testing.T) {
	err := runArgs(t)
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(t, err))

	err = runArgs(t, "https://a", "https://b")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(t, err))
}

func TestCLI_RejectsInvalidMode(t *testing.T) {
	err := runArgs(t, "--mode", "karaoke", "https://youtu.be/abc")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(t, err))
	assert.Contains(t, err.Error(), "karaoke")
}

func TestCLI_RejectsInvalidConfig(t *testing.T) {
	err := runArgs(t, "--output", t.TempDir(), "--codec", "wma", "--container", "avi", "https://youtu.be/abc")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(t, err))
	assert.Contains(t, err.Error(), "wma")
	assert.Contains(t, err.Error(), "avi")
}
