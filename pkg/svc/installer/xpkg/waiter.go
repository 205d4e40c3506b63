package xpkginstaller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/yaml"

	"github.com/devantler-tech/kindplane/pkg/k8s"
	crossplaneinstaller "github.com/devantler-tech/kindplane/pkg/svc/installer/crossplane"
	"github.com/devantler-tech/kindplane/pkg/utils/labels"
	"github.com/devantler-tech/kindplane/pkg/utils/notify"
)

// ErrHealthTimeout is returned when a package misses its health deadline.
var ErrHealthTimeout = errors.New("package did not report healthy before the deadline")

var errUnsupportedPackageKind = errors.New("unsupported package kind")

// WaitHealthy polls the named package resource every interval until its
// Healthy condition reports True or the timeout passes. On timeout it writes
// the last observed status as YAML and a pod-failure summary for the
// control-plane namespace to the output writer, then returns a wrapped
// ErrHealthTimeout.
func (i *Installer) WaitHealthy(ctx context.Context, kind, name string) error {
	probe, err := healthProbe(kind, name)
	if err != nil {
		return err
	}

	packageClient, err := i.packageClient()
	if err != nil {
		return err
	}

	waitCtx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()

	for {
		if probe(waitCtx, packageClient) {
			return nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return fmt.Errorf("health wait cancelled: %w", ctx.Err())
			}

			i.writeTimeoutDiagnostics(ctx, packageClient, kind, name)

			return fmt.Errorf("%s %s: %w", kind, name, ErrHealthTimeout)
		case <-ticker.C:
		}
	}
}

// healthProbe returns a function that reads the named resource and reports
// whether its Healthy condition is True. Read failures count as not healthy
// so polling rides out transient API errors while the package materializes.
func healthProbe(kind, name string) (func(context.Context, client.Client) bool, error) {
	key := client.ObjectKey{Name: name}

	switch kind {
	case ProviderKind:
		return func(ctx context.Context, packageClient client.Client) bool {
			resource := &Provider{}

			err := packageClient.Get(ctx, key, resource)
			if err != nil {
				return false
			}

			return isHealthy(&resource.Status)
		}, nil
	case FunctionKind:
		return func(ctx context.Context, packageClient client.Client) bool {
			resource := &Function{}

			err := packageClient.Get(ctx, key, resource)
			if err != nil {
				return false
			}

			return isHealthy(&resource.Status)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedPackageKind, kind)
	}
}

// isHealthy returns true on an observation of Healthy=True. Any other
// condition state, including an absent condition, is not healthy.
func isHealthy(status *PackageStatus) bool {
	condition := status.GetCondition(HealthyConditionType)

	return condition != nil && condition.Status == metav1.ConditionTrue
}

// writeTimeoutDiagnostics reports why the wait gave up: the resource's
// current status as YAML plus any failing pods in the control-plane
// namespace.
func (i *Installer) writeTimeoutDiagnostics(
	ctx context.Context,
	packageClient client.Client,
	kind string,
	name string,
) {
	notify.Errorf(i.out, "%s %q did not report Healthy=True within %s", kind, name, i.timeout)

	statusYaml := lastObservedStatus(ctx, packageClient, kind, name)
	if statusYaml != "" {
		notify.Infof(i.out, "last observed status of %s %q:\n%s", kind, name, statusYaml)
	}

	diagnosis := i.podDiagnosis(ctx)
	if diagnosis != "" {
		notify.Warningf(i.out, "%s", strings.TrimPrefix(diagnosis, "\n"))
	}
}

// lastObservedStatus re-reads the resource and renders its status as YAML.
// Returns an empty string when the resource cannot be read.
func lastObservedStatus(
	ctx context.Context,
	packageClient client.Client,
	kind string,
	name string,
) string {
	key := client.ObjectKey{Name: name}

	var status *PackageStatus

	switch kind {
	case ProviderKind:
		resource := &Provider{}

		err := packageClient.Get(ctx, key, resource)
		if err != nil {
			return ""
		}

		status = &resource.Status
	case FunctionKind:
		resource := &Function{}

		err := packageClient.Get(ctx, key, resource)
		if err != nil {
			return ""
		}

		status = &resource.Status
	default:
		return ""
	}

	data, err := yaml.Marshal(status)
	if err != nil {
		return ""
	}

	return strings.TrimRight(string(data), "\n")
}

// revisionLabel is the label Crossplane stamps on the pods a package
// revision runs.
const revisionLabel = "pkg.crossplane.io/revision"

// podDiagnosis summarizes failing pods in the control-plane namespace and
// names the package revisions they belong to.
func (i *Installer) podDiagnosis(ctx context.Context) string {
	clientset, err := newKubernetesClient(i.kubeconfig)
	if err != nil {
		return ""
	}

	summary, failing := k8s.DiagnosePodFailures(ctx, clientset, crossplaneinstaller.Namespace)
	if summary == "" {
		return ""
	}

	revisions := labels.UniqueValues(failing, revisionLabel, func(pod corev1.Pod) map[string]string {
		return pod.Labels
	})
	if len(revisions) > 0 {
		summary += fmt.Sprintf("\n  stuck package revisions: %s", strings.Join(revisions, ", "))
	}

	return summary
}
