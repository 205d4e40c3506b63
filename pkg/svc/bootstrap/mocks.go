package bootstrap

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClusterProvisioner is a testify mock implementation of
// ClusterProvisioner for use in tests.
type MockClusterProvisioner struct {
	mock.Mock
}

var _ ClusterProvisioner = (*MockClusterProvisioner)(nil)

// Exists mocks the cluster existence check.
func (m *MockClusterProvisioner) Exists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Bool(0), args.Error(1)
}

// Create mocks cluster creation.
func (m *MockClusterProvisioner) Create(ctx context.Context, name string) error {
	args := m.Called(ctx, name)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// Delete mocks cluster deletion.
func (m *MockClusterProvisioner) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// MockCrossplaneInstaller is a testify mock implementation of
// CrossplaneInstaller for use in tests.
type MockCrossplaneInstaller struct {
	mock.Mock
}

var _ CrossplaneInstaller = (*MockCrossplaneInstaller)(nil)

// EnsureRepository mocks repository registration.
func (m *MockCrossplaneInstaller) EnsureRepository(ctx context.Context) error {
	args := m.Called(ctx)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// RefreshRepositories mocks the repository index refresh.
func (m *MockCrossplaneInstaller) RefreshRepositories(ctx context.Context) error {
	args := m.Called(ctx)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// Install mocks the chart install.
func (m *MockCrossplaneInstaller) Install(ctx context.Context) error {
	args := m.Called(ctx)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// WaitForCoreRollout mocks the core deployment rollout wait.
func (m *MockCrossplaneInstaller) WaitForCoreRollout(ctx context.Context) error {
	args := m.Called(ctx)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// WaitForRBACRollout mocks the RBAC manager rollout wait.
func (m *MockCrossplaneInstaller) WaitForRBACRollout(ctx context.Context) error {
	args := m.Called(ctx)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// Uninstall mocks the release uninstall.
func (m *MockCrossplaneInstaller) Uninstall(ctx context.Context) error {
	args := m.Called(ctx)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// MockPackageInstaller is a testify mock implementation of PackageInstaller
// for use in tests.
type MockPackageInstaller struct {
	mock.Mock
}

var _ PackageInstaller = (*MockPackageInstaller)(nil)

// EnsurePackageAPIEstablished mocks the CRD-established gate.
func (m *MockPackageInstaller) EnsurePackageAPIEstablished(ctx context.Context) error {
	args := m.Called(ctx)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// ApplyProvider mocks the provider upsert.
func (m *MockPackageInstaller) ApplyProvider(ctx context.Context, name, pkg string) error {
	args := m.Called(ctx, name, pkg)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// ApplyFunction mocks the function upsert.
func (m *MockPackageInstaller) ApplyFunction(ctx context.Context, name, pkg string) error {
	args := m.Called(ctx, name, pkg)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// WaitHealthy mocks the package health wait.
func (m *MockPackageInstaller) WaitHealthy(ctx context.Context, kind, name string) error {
	args := m.Called(ctx, kind, name)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// StripFunctionRevisionFinalizers mocks the finalizer strip.
func (m *MockPackageInstaller) StripFunctionRevisionFinalizers(ctx context.Context) error {
	args := m.Called(ctx)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// DeleteProvider mocks the provider deletion.
func (m *MockPackageInstaller) DeleteProvider(ctx context.Context, name string) error {
	args := m.Called(ctx, name)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// DeleteFunction mocks the function deletion.
func (m *MockPackageInstaller) DeleteFunction(ctx context.Context, name string) error {
	args := m.Called(ctx, name)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// PurgeRevisionWorkloads mocks the workload purge.
func (m *MockPackageInstaller) PurgeRevisionWorkloads(
	ctx context.Context,
	packageNames []string,
) error {
	args := m.Called(ctx, packageNames)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// DeletePackageCRDs mocks the package CRD deletion.
func (m *MockPackageInstaller) DeletePackageCRDs(ctx context.Context) error {
	args := m.Called(ctx)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}
