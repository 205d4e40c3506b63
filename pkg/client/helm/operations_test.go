package helm_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/devantler-tech/kindplane/pkg/client/helm"
)

var errChartInstallationFailed = errors.New("chart installation failed")

func TestInstallChartWithRetry_Success(t *testing.T) {
	t.Parallel()

	mockClient := &helm.MockClient{}
	spec := &helm.ChartSpec{ReleaseName: "crossplane"}

	mockClient.On("InstallOrUpgradeChart", mock.Anything, spec).
		Return(&helm.ReleaseInfo{Name: "crossplane"}, nil)

	err := helm.InstallChartWithRetry(context.Background(), mockClient, spec, "crossplane")

	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestInstallChartWithRetry_NonRetryableFailsImmediately(t *testing.T) {
	t.Parallel()

	mockClient := &helm.MockClient{}
	spec := &helm.ChartSpec{ReleaseName: "crossplane"}

	mockClient.On("InstallOrUpgradeChart", mock.Anything, spec).
		Return(nil, fmt.Errorf("install error: %w", errChartInstallationFailed))

	err := helm.InstallChartWithRetry(context.Background(), mockClient, spec, "crossplane")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to install crossplane chart")
	require.ErrorIs(t, err, errChartInstallationFailed)
	// A non-retryable failure must not be attempted again.
	mockClient.AssertNumberOfCalls(t, "InstallOrUpgradeChart", 1)
}
