package cmd_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devantler-tech/kindplane/pkg/cli/cmd"
	"github.com/devantler-tech/kindplane/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/kindplane/pkg/di"
)

func executeDown(t *testing.T, captured *capturedRun, args ...string) error {
	t.Helper()

	downCmd := cmd.NewDownCmd(di.New(stubFactoryModule(captured)))
	downCmd.SetOut(&bytes.Buffer{})
	downCmd.SetErr(&bytes.Buffer{})
	downCmd.SetArgs(append([]string{}, args...))

	return downCmd.Execute()
}

func TestNewDownCmd(t *testing.T) {
	t.Parallel()

	downCmd := cmd.NewDownCmd(di.NewRuntime())

	assert.Equal(t, "down", downCmd.Use)
	assert.NotEmpty(t, downCmd.Short)
	assert.NotEmpty(t, downCmd.Long)
}

func TestDownCmd_DefaultConfiguration(t *testing.T) {
	t.Parallel()

	captured := newCapturedRun()

	err := executeDown(t, captured)

	require.NoError(t, err)
	require.NotNil(t, captured.config)

	spec := captured.config.Spec
	assert.Equal(t, "crossplane", spec.Cluster.Name)
	assert.Equal(t, "~/.kube/config", spec.Cluster.Kubeconfig)
	assert.False(t, spec.Cleanup.DeleteCluster)
	assert.False(t, spec.Cleanup.ForceClean)
	assert.False(t, spec.DryRun)
	assert.False(t, spec.AssumeYes)
	assert.Equal(t, 10*time.Minute, spec.WaitTimeout.Duration())
	assert.Equal(t, 1, captured.bootstrapper.downCalls)
	assert.Equal(t, 0, captured.bootstrapper.upCalls)
}

func TestDownCmd_FlagsOverrideDefaults(t *testing.T) {
	t.Parallel()

	captured := newCapturedRun()

	err := executeDown(t, captured,
		"--name", "sandbox",
		"--delete-cluster",
		"--force-clean",
		"--wait", "3m",
		"--dry-run",
		"--yes",
	)

	require.NoError(t, err)
	require.NotNil(t, captured.config)

	spec := captured.config.Spec
	assert.Equal(t, "sandbox", spec.Cluster.Name)
	assert.True(t, spec.Cleanup.DeleteCluster)
	assert.True(t, spec.Cleanup.ForceClean)
	assert.Equal(t, 3*time.Minute, spec.WaitTimeout.Duration())
	assert.True(t, spec.DryRun)
	assert.True(t, spec.AssumeYes)
}

func TestDownCmd_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("KINDPLANE_DELETE_CLUSTER", "true")
	t.Setenv("KINDPLANE_FORCE_CLEAN", "true")

	captured := newCapturedRun()

	err := executeDown(t, captured)

	require.NoError(t, err)
	require.NotNil(t, captured.config)
	assert.True(t, captured.config.Spec.Cleanup.DeleteCluster)
	assert.True(t, captured.config.Spec.Cleanup.ForceClean)
}

func TestDownCmd_RejectsUpOnlyFlags(t *testing.T) {
	t.Parallel()

	_, err := executeRoot(t, "down", "--recreate")

	require.Error(t, err)
	assert.True(t, errorhandler.IsUsageError(err))
}

func TestDownCmd_BootstrapErrorPropagates(t *testing.T) {
	t.Parallel()

	captured := newCapturedRun()
	captured.bootstrapper.downErr = errBootstrapFailed

	err := executeDown(t, captured)

	require.Error(t, err)
	assert.ErrorIs(t, err, errBootstrapFailed)
	assert.False(t, errorhandler.IsUsageError(err))
}
