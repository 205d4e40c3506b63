package kindprovisioner

import (
	"fmt"
	"io"

	"sigs.k8s.io/kind/pkg/cluster"
)

// DefaultProviderAdapter provides a production-ready implementation of
// KindProvider that wraps the kind library's Provider.
type DefaultProviderAdapter struct {
	provider *cluster.Provider
}

// NewDefaultProviderAdapter creates a new instance of the default kind
// provider adapter. Progress output from kind is streamed to the given writer.
func NewDefaultProviderAdapter(out io.Writer) *DefaultProviderAdapter {
	return &DefaultProviderAdapter{
		provider: cluster.NewProvider(
			cluster.ProviderWithLogger(&streamLogger{writer: out}),
		),
	}
}

// Create creates a new kind cluster.
func (a *DefaultProviderAdapter) Create(name string, opts ...cluster.CreateOption) error {
	err := a.provider.Create(name, opts...)
	if err != nil {
		return fmt.Errorf("kind create: %w", err)
	}

	return nil
}

// Delete deletes a kind cluster.
func (a *DefaultProviderAdapter) Delete(name, kubeconfigPath string) error {
	err := a.provider.Delete(name, kubeconfigPath)
	if err != nil {
		return fmt.Errorf("kind delete: %w", err)
	}

	return nil
}

// List lists all kind clusters.
func (a *DefaultProviderAdapter) List() ([]string, error) {
	clusters, err := a.provider.List()
	if err != nil {
		return nil, fmt.Errorf("kind list: %w", err)
	}

	return clusters, nil
}
