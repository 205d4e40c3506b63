package crossplaneinstaller_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/devantler-tech/kindplane/pkg/client/helm"
	"github.com/devantler-tech/kindplane/pkg/k8s/readiness"
	crossplaneinstaller "github.com/devantler-tech/kindplane/pkg/svc/installer/crossplane"
)

var (
	errClientsetUnavailable = errors.New("clientset unavailable")
	errReleaseNotLoaded     = errors.New(
		`uninstall release "crossplane": uninstall: Release not loaded: crossplane: release: not found`,
	)
)

func TestNewInstaller(t *testing.T) {
	t.Parallel()

	client := &helm.MockClient{}
	installer := crossplaneinstaller.NewInstaller(
		client,
		"~/.kube/config",
		"1.20.0",
		5*time.Minute,
		5*time.Minute,
	)

	assert.NotNil(t, installer)
}

func TestEnsureRepositorySuccess(t *testing.T) {
	t.Parallel()

	installer, client := newInstallerWithDefaults(t)
	expectAddRepository(t, client, nil)

	err := installer.EnsureRepository(context.Background())

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestEnsureRepositoryError(t *testing.T) {
	t.Parallel()

	installer, client := newInstallerWithDefaults(t)
	expectAddRepository(t, client, assert.AnError)

	err := installer.EnsureRepository(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add crossplane-stable repository")
}

func TestRefreshRepositoriesSuccess(t *testing.T) {
	t.Parallel()

	installer, client := newInstallerWithDefaults(t)
	client.On("UpdateRepositories", mock.Anything, mock.Anything).Return(nil)

	err := installer.RefreshRepositories(context.Background())

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestRefreshRepositoriesError(t *testing.T) {
	t.Parallel()

	installer, client := newInstallerWithDefaults(t)
	client.On("UpdateRepositories", mock.Anything, mock.Anything).Return(assert.AnError)

	err := installer.RefreshRepositories(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update helm repositories")
}

func TestInstallSuccess(t *testing.T) {
	t.Parallel()

	installer, client := newInstallerWithDefaults(t)
	expectInstall(t, client, nil)

	err := installer.Install(context.Background())

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestInstallError(t *testing.T) {
	t.Parallel()

	installer, client := newInstallerWithDefaults(t)
	expectInstall(t, client, assert.AnError)

	err := installer.Install(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to install crossplane chart")
	client.AssertNumberOfCalls(t, "InstallOrUpgradeChart", 1)
}

func TestInstallDoesNotTouchRepositories(t *testing.T) {
	t.Parallel()

	installer, client := newInstallerWithDefaults(t)
	expectInstall(t, client, nil)

	err := installer.Install(context.Background())

	require.NoError(t, err)
	client.AssertNotCalled(t, "AddRepository", mock.Anything, mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "UpdateRepositories", mock.Anything, mock.Anything)
}

func TestUninstallSuccess(t *testing.T) {
	t.Parallel()

	installer, client := newInstallerWithDefaults(t)
	client.On("UninstallRelease", mock.Anything, "crossplane", "crossplane-system").Return(nil)

	err := installer.Uninstall(context.Background())

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestUninstallToleratesMissingRelease(t *testing.T) {
	t.Parallel()

	installer, client := newInstallerWithDefaults(t)
	client.On("UninstallRelease", mock.Anything, "crossplane", "crossplane-system").
		Return(errReleaseNotLoaded)

	err := installer.Uninstall(context.Background())

	require.NoError(t, err)
}

func TestUninstallError(t *testing.T) {
	t.Parallel()

	installer, client := newInstallerWithDefaults(t)
	client.On("UninstallRelease", mock.Anything, "crossplane", "crossplane-system").
		Return(assert.AnError)

	err := installer.Uninstall(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to uninstall crossplane release")
}

func TestWaitForCoreRolloutSuccess(t *testing.T) {
	installer, _ := newInstallerWithDefaults(t)
	restore := stubClientset(fake.NewClientset(readyDeployment("crossplane")), nil)
	defer restore()

	err := installer.WaitForCoreRollout(context.Background())

	require.NoError(t, err)
}

func TestWaitForCoreRolloutTimeout(t *testing.T) {
	installer, _ := newInstallerWithDefaults(t)
	restore := stubClientset(fake.NewClientset(unreadyDeployment("crossplane")), nil)
	defer restore()

	err := installer.WaitForCoreRollout(context.Background())

	require.Error(t, err)
	require.ErrorIs(t, err, readiness.ErrTimeoutExceeded)
	assert.Contains(t, err.Error(), "deployment crossplane-system/crossplane did not become ready")
}

func TestWaitForCoreRolloutClientError(t *testing.T) {
	installer, _ := newInstallerWithDefaults(t)
	restore := stubClientset(nil, errClientsetUnavailable)
	defer restore()

	err := installer.WaitForCoreRollout(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create kubernetes client")
}

func TestWaitForRBACRolloutSuccess(t *testing.T) {
	installer, _ := newInstallerWithDefaults(t)
	restore := stubClientset(
		fake.NewClientset(readyDeployment("crossplane-rbac-manager")),
		nil,
	)
	defer restore()

	err := installer.WaitForRBACRollout(context.Background())

	require.NoError(t, err)
}

func TestWaitForRBACRolloutTimeout(t *testing.T) {
	installer, _ := newInstallerWithDefaults(t)
	restore := stubClientset(fake.NewClientset(), nil)
	defer restore()

	err := installer.WaitForRBACRollout(context.Background())

	require.Error(t, err)
	assert.Contains(
		t,
		err.Error(),
		"deployment crossplane-system/crossplane-rbac-manager did not become ready",
	)
}

func newInstallerWithDefaults(t *testing.T) (*crossplaneinstaller.Installer, *helm.MockClient) {
	t.Helper()

	client := &helm.MockClient{}
	installer := crossplaneinstaller.NewInstaller(
		client,
		"~/.kube/config",
		"1.20.0",
		5*time.Second,
		50*time.Millisecond,
	)

	return installer, client
}

func stubClientset(clientset kubernetes.Interface, err error) func() {
	return crossplaneinstaller.SetKubernetesClientFactoryForTests(
		func(string) (kubernetes.Interface, error) {
			return clientset, err
		},
	)
}

func expectAddRepository(t *testing.T, client *helm.MockClient, err error) {
	t.Helper()
	client.On(
		"AddRepository",
		mock.Anything,
		mock.MatchedBy(func(entry *helm.RepositoryEntry) bool {
			assert.Equal(t, "crossplane-stable", entry.Name)
			assert.Equal(t, "https://charts.crossplane.io/stable", entry.URL)

			return true
		}),
		mock.Anything,
	).Return(err)
}

func expectInstall(t *testing.T, client *helm.MockClient, installErr error) {
	t.Helper()
	client.On(
		"InstallOrUpgradeChart",
		mock.Anything,
		mock.MatchedBy(func(spec *helm.ChartSpec) bool {
			assert.Equal(t, "crossplane", spec.ReleaseName)
			assert.Equal(t, "crossplane-stable/crossplane", spec.ChartName)
			assert.Equal(t, "crossplane-system", spec.Namespace)
			assert.Equal(t, "1.20.0", spec.Version)
			assert.Equal(t, "https://charts.crossplane.io/stable", spec.RepoURL)
			assert.True(t, spec.CreateNamespace)
			assert.True(t, spec.Silent)
			assert.True(t, spec.UpgradeCRDs)
			assert.False(t, spec.Wait)

			return true
		}),
	).Return(nil, installErr)
}

func readyDeployment(name string) *appsv1.Deployment {
	replicas := int32(1)

	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:       name,
			Namespace:  "crossplane-system",
			Generation: 1,
		},
		Spec: appsv1.DeploymentSpec{Replicas: &replicas},
		Status: appsv1.DeploymentStatus{
			ObservedGeneration: 1,
			UpdatedReplicas:    1,
			AvailableReplicas:  1,
		},
	}
}

func unreadyDeployment(name string) *appsv1.Deployment {
	deployment := readyDeployment(name)
	deployment.Status.AvailableReplicas = 0

	return deployment
}
