package cmd_test

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devantler-tech/kindplane/pkg/cli/cmd"
	"github.com/devantler-tech/kindplane/pkg/cli/ui/errorhandler"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	rootCmd := cmd.NewRootCmd("dev", "none", "unknown")
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(append([]string{}, args...))

	err := rootCmd.Execute()

	return out.String(), err
}

func TestNewRootCmd_VersionFormat(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("1.2.3", "abc123", "2025-08-17")

	assert.Equal(t, "1.2.3 (Built on 2025-08-17 from Git SHA abc123)", rootCmd.Version)
}

func TestRootCmd_ShowsHelpWithoutArguments(t *testing.T) {
	t.Parallel()

	output, err := executeRoot(t)

	require.NoError(t, err)
	assert.Contains(t, output, "kindplane")
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "up")
	assert.Contains(t, output, "down")
}

func TestRootCmd_VersionFlag(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("1.2.3", "abc123", "2025-08-17")
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs([]string{"--version"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, out.String(), "1.2.3 (Built on 2025-08-17 from Git SHA abc123)")
}

func TestRootCmd_UnknownCommandIsUsageError(t *testing.T) {
	t.Parallel()

	_, err := executeRoot(t, "teardown")

	require.Error(t, err)
	assert.True(t, errorhandler.IsUsageError(err))
}

func TestRootCmd_VerboseFlagEnablesDebugLogging(t *testing.T) {
	previous := logrus.GetLevel()
	t.Cleanup(func() { logrus.SetLevel(previous) })

	_, err := executeRoot(t, "--verbose")

	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestRootCmd_VerboseEnvironmentEnablesDebugLogging(t *testing.T) {
	t.Setenv("KINDPLANE_VERBOSE", "true")

	previous := logrus.GetLevel()
	t.Cleanup(func() { logrus.SetLevel(previous) })

	_, err := executeRoot(t)

	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestExecute_Success(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("dev", "none", "unknown")
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{})

	err := cmd.Execute(rootCmd)

	require.NoError(t, err)
}

func TestExecute_UnknownCommandFailure(t *testing.T) {
	t.Parallel()

	rootCmd := cmd.NewRootCmd("dev", "none", "unknown")
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"bogus"})

	err := cmd.Execute(rootCmd)

	require.Error(t, err)
	assert.True(t, errorhandler.IsUsageError(err))
	assert.Contains(t, err.Error(), "command execution failed")
	assert.Contains(t, err.Error(), "unknown command")
}
