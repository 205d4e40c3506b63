package provider

import (
	"context"

	"github.com/docker/docker/api/types"
	"github.com/stretchr/testify/mock"
)

// MockChecker is a mock implementation of the Checker interface for testing.
type MockChecker struct {
	mock.Mock
}

// NewMockChecker creates a new MockChecker instance.
func NewMockChecker() *MockChecker {
	return &MockChecker{}
}

// Check mocks the engine preflight check.
func (m *MockChecker) Check(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}

// MockAPIClient is a mock implementation of the APIClient interface for testing.
type MockAPIClient struct {
	mock.Mock
}

// NewMockAPIClient creates a new MockAPIClient instance.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// Ping mocks the Docker daemon ping.
func (m *MockAPIClient) Ping(ctx context.Context) (types.Ping, error) {
	args := m.Called(ctx)

	result, ok := args.Get(0).(types.Ping)
	if !ok {
		return types.Ping{}, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
	}

	return result, args.Error(1) //nolint:wrapcheck // Mock function, wrapping not needed
}

// Close mocks closing the client.
func (m *MockAPIClient) Close() error {
	args := m.Called()

	return args.Error(0) //nolint:wrapcheck // Mock function, wrapping not needed
}
