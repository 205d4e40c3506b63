package readiness

import (
	"context"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// WaitForDeploymentReady polls until the named deployment completes its
// rollout. A rollout is complete when the controller has observed the latest
// generation and every desired replica is updated and available.
func WaitForDeploymentReady(
	ctx context.Context,
	clientset kubernetes.Interface,
	interval time.Duration,
	deadline time.Duration,
	namespace string,
	name string,
) error {
	return PollForReadiness(ctx, interval, deadline, func(ctx context.Context) (bool, error) {
		deployment, err := clientset.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			// Continue polling on transient errors, including NotFound
			// while the release is still materializing.
			return false, nil //nolint:nilerr // returning nil to continue polling
		}

		return isDeploymentReady(deployment), nil
	})
}

// isDeploymentReady returns true when the deployment rollout is complete.
func isDeploymentReady(deployment *appsv1.Deployment) bool {
	if deployment.Status.ObservedGeneration < deployment.Generation {
		return false
	}

	desired := int32(1)
	if deployment.Spec.Replicas != nil {
		desired = *deployment.Spec.Replicas
	}

	return deployment.Status.UpdatedReplicas >= desired &&
		deployment.Status.AvailableReplicas >= desired
}
