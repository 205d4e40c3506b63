// Package kindprovisioner provisions local kind clusters through the kind SDK.
package kindprovisioner

import (
	"context"
	"fmt"
	"slices"

	"sigs.k8s.io/kind/pkg/cluster"

	"github.com/devantler-tech/kindplane/pkg/k8s"
)

// KindProvider describes the subset of methods from kind's Provider used here.
type KindProvider interface {
	Create(name string, opts ...cluster.CreateOption) error
	Delete(name, kubeconfigPath string) error
	List() ([]string, error)
}

// KindClusterProvisioner creates, deletes, and inspects kind clusters through
// the kind SDK.
type KindClusterProvisioner struct {
	nodeImage  string
	kubeConfig string
	provider   KindProvider
}

// NewKindClusterProvisioner constructs a KindClusterProvisioner. An empty
// nodeImage lets kind pick the default image for its release, and an empty
// kubeConfig lets kind resolve the kubeconfig location itself.
func NewKindClusterProvisioner(
	nodeImage string,
	kubeConfig string,
	provider KindProvider,
) *KindClusterProvisioner {
	return &KindClusterProvisioner{
		nodeImage:  nodeImage,
		kubeConfig: kubeConfig,
		provider:   provider,
	}
}

// Create creates a kind cluster with the configured node image and writes its
// credentials to the configured kubeconfig. The kind SDK does not accept a
// context, so cancellation is only honored before the call starts.
func (k *KindClusterProvisioner) Create(ctx context.Context, name string) error {
	err := ctx.Err()
	if err != nil {
		return fmt.Errorf("failed to create kind cluster: %w", err)
	}

	opts, err := k.createOptions()
	if err != nil {
		return err
	}

	err = k.provider.Create(name, opts...)
	if err != nil {
		return fmt.Errorf("failed to create kind cluster: %w", err)
	}

	return nil
}

// Delete deletes a kind cluster and removes its context from the configured
// kubeconfig. Returns ErrClusterNotFound if the cluster does not exist.
func (k *KindClusterProvisioner) Delete(ctx context.Context, name string) error {
	exists, err := k.Exists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check cluster existence: %w", err)
	}

	if !exists {
		return fmt.Errorf("%w: %s", ErrClusterNotFound, name)
	}

	kubeconfigPath, err := k.kubeconfigPath()
	if err != nil {
		return err
	}

	err = k.provider.Delete(name, kubeconfigPath)
	if err != nil {
		return fmt.Errorf("failed to delete kind cluster: %w", err)
	}

	return nil
}

// Exists reports whether a kind cluster with the given name exists.
func (k *KindClusterProvisioner) Exists(ctx context.Context, name string) (bool, error) {
	err := ctx.Err()
	if err != nil {
		return false, fmt.Errorf("failed to list kind clusters: %w", err)
	}

	clusters, err := k.provider.List()
	if err != nil {
		return false, fmt.Errorf("failed to list kind clusters: %w", err)
	}

	return slices.Contains(clusters, name), nil
}

// List returns the names of all kind clusters on the host.
func (k *KindClusterProvisioner) List(ctx context.Context) ([]string, error) {
	err := ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("failed to list kind clusters: %w", err)
	}

	clusters, err := k.provider.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list kind clusters: %w", err)
	}

	return clusters, nil
}

func (k *KindClusterProvisioner) createOptions() ([]cluster.CreateOption, error) {
	var opts []cluster.CreateOption

	kubeconfigPath, err := k.kubeconfigPath()
	if err != nil {
		return nil, err
	}

	if kubeconfigPath != "" {
		opts = append(opts, cluster.CreateWithKubeconfigPath(kubeconfigPath))
	}

	if k.nodeImage != "" {
		opts = append(opts, cluster.CreateWithNodeImage(k.nodeImage))
	}

	return opts, nil
}

func (k *KindClusterProvisioner) kubeconfigPath() (string, error) {
	if k.kubeConfig == "" {
		return "", nil
	}

	path, err := k8s.ExpandHomePath(k.kubeConfig)
	if err != nil {
		return "", fmt.Errorf("failed to expand kubeconfig path: %w", err)
	}

	return path, nil
}
