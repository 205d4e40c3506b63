package readiness

import (
	"context"
	"time"

	"k8s.io/client-go/kubernetes"
)

// WaitForAPIServerReady waits for the Kubernetes API server to respond.
//
// This function polls the API server by performing a ServerVersion request
// until it responds without errors. This is useful after cluster creation
// when the API server may still be starting up.
func WaitForAPIServerReady(
	ctx context.Context,
	clientset kubernetes.Interface,
	interval time.Duration,
	deadline time.Duration,
) error {
	return PollForReadiness(ctx, interval, deadline, func(_ context.Context) (bool, error) {
		// ServerVersion is a lightweight health check.
		_, err := clientset.Discovery().ServerVersion()
		if err != nil {
			return false, nil //nolint:nilerr // returning nil to continue polling
		}

		return true, nil
	})
}
