package helm

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockClient is a testify mock implementation of Interface for use in tests.
type MockClient struct {
	mock.Mock
}

var _ Interface = (*MockClient)(nil)

// InstallOrUpgradeChart mocks the install-or-upgrade operation.
func (m *MockClient) InstallOrUpgradeChart(
	ctx context.Context,
	spec *ChartSpec,
) (*ReleaseInfo, error) {
	args := m.Called(ctx, spec)

	info, _ := args.Get(0).(*ReleaseInfo)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return info, args.Error(1)
}

// UninstallRelease mocks the uninstall operation.
func (m *MockClient) UninstallRelease(ctx context.Context, releaseName, namespace string) error {
	args := m.Called(ctx, releaseName, namespace)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// AddRepository mocks repository registration.
func (m *MockClient) AddRepository(
	ctx context.Context,
	entry *RepositoryEntry,
	timeout time.Duration,
) error {
	args := m.Called(ctx, entry, timeout)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}

// UpdateRepositories mocks the repository index refresh.
func (m *MockClient) UpdateRepositories(ctx context.Context, timeout time.Duration) error {
	args := m.Called(ctx, timeout)

	//nolint:wrapcheck // Mock function, wrapping not needed.
	return args.Error(0)
}
