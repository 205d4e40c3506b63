package crossplaneinstaller

import "k8s.io/client-go/kubernetes"

// SetKubernetesClientFactoryForTests overrides the clientset factory used by
// the rollout waits. Returns a restore function that resets the override.
func SetKubernetesClientFactoryForTests(
	factory func(kubeconfig string) (kubernetes.Interface, error),
) func() {
	previous := newKubernetesClient
	newKubernetesClient = factory

	return func() {
		newKubernetesClient = previous
	}
}
