package xpkginstaller

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// AddPackageTypesToScheme exports addPackageTypesToScheme for testing.
func AddPackageTypesToScheme(scheme *runtime.Scheme) error {
	return addPackageTypesToScheme(scheme)
}

// HasPackagePrefix exports hasPackagePrefix for testing.
func HasPackagePrefix(name string, packageNames []string) bool {
	return hasPackagePrefix(name, packageNames)
}

// IsHealthy exports isHealthy for testing.
func IsHealthy(status *PackageStatus) bool {
	return isHealthy(status)
}

// WaitForCRDEstablished exports waitForCRDEstablished with caller-controlled
// timing for testing.
func WaitForCRDEstablished(
	ctx context.Context,
	restConfig *rest.Config,
	crdName string,
	timeout time.Duration,
	interval time.Duration,
) error {
	return waitForCRDEstablished(ctx, restConfig, crdName, timeout, interval)
}

// SetPackageClientFactoryForTests overrides the package client factory.
// Returns a restore function that resets the override.
func SetPackageClientFactoryForTests(
	factory func(*rest.Config) (client.Client, error),
) func() {
	previous := newPackageClient
	newPackageClient = factory

	return func() {
		newPackageClient = previous
	}
}

// SetAPIExtensionsClientFactoryForTests overrides the CRD client factory.
// Returns a restore function that resets the override.
func SetAPIExtensionsClientFactoryForTests(
	factory func(*rest.Config) (client.Client, error),
) func() {
	previous := newAPIExtensionsClient
	newAPIExtensionsClient = factory

	return func() {
		newAPIExtensionsClient = previous
	}
}

// SetKubernetesClientFactoryForTests overrides the clientset factory.
// Returns a restore function that resets the override.
func SetKubernetesClientFactoryForTests(
	factory func(kubeconfig string) (kubernetes.Interface, error),
) func() {
	previous := newKubernetesClient
	newKubernetesClient = factory

	return func() {
		newKubernetesClient = previous
	}
}
