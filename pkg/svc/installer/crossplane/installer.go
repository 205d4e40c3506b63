// Package crossplaneinstaller installs the Crossplane control plane from its
// stable Helm repository and waits for the core deployments to roll out.
package crossplaneinstaller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"k8s.io/client-go/kubernetes"

	"github.com/devantler-tech/kindplane/pkg/client/helm"
	"github.com/devantler-tech/kindplane/pkg/k8s"
	"github.com/devantler-tech/kindplane/pkg/k8s/readiness"
)

const (
	// Namespace is the namespace the Crossplane release is installed into.
	Namespace = "crossplane-system"
	// ReleaseName is the Helm release name of the control plane.
	ReleaseName = "crossplane"

	repoName  = "crossplane-stable"
	repoURL   = "https://charts.crossplane.io/stable"
	chartName = "crossplane-stable/crossplane"

	coreDeploymentName = "crossplane"
	rbacDeploymentName = "crossplane-rbac-manager"

	rolloutPollInterval = 2 * time.Second
)

//nolint:gochecknoglobals // Allows mocking the clientset for tests
var newKubernetesClient = func(kubeconfig string) (kubernetes.Interface, error) {
	return k8s.NewClientset(kubeconfig)
}

// Installer installs or upgrades the Crossplane control plane.
//
// Repository registration, chart installation, and rollout waits are separate
// methods so the caller decides which step failures abort a run and which are
// tolerated.
type Installer struct {
	client      helm.Interface
	kubeconfig  string
	version     string
	timeout     time.Duration
	waitTimeout time.Duration
}

// NewInstaller creates a new Crossplane installer instance. The version pins
// the Helm chart version, timeout bounds each Helm operation, and waitTimeout
// bounds each rollout wait.
func NewInstaller(
	client helm.Interface,
	kubeconfig string,
	version string,
	timeout time.Duration,
	waitTimeout time.Duration,
) *Installer {
	return &Installer{
		client:      client,
		kubeconfig:  kubeconfig,
		version:     version,
		timeout:     timeout,
		waitTimeout: waitTimeout,
	}
}

// EnsureRepository registers the stable Crossplane chart repository and
// downloads its index. A failure leaves any previously cached index in place,
// so callers may treat it as recoverable.
func (i *Installer) EnsureRepository(ctx context.Context) error {
	repo := &helm.RepositoryEntry{
		Name: repoName,
		URL:  repoURL,
	}

	err := i.client.AddRepository(ctx, repo, i.timeout)
	if err != nil {
		return fmt.Errorf("failed to add %s repository: %w", repoName, err)
	}

	return nil
}

// RefreshRepositories re-downloads the index of every configured repository.
func (i *Installer) RefreshRepositories(ctx context.Context) error {
	err := i.client.UpdateRepositories(ctx, i.timeout)
	if err != nil {
		return fmt.Errorf("failed to update helm repositories: %w", err)
	}

	return nil
}

// Install installs or upgrades the pinned Crossplane chart version. It does
// not wait on the chart itself; rollout completion is observed through
// WaitForCoreRollout and WaitForRBACRollout so a stalled rollout surfaces as
// a named deployment rather than a generic Helm timeout.
func (i *Installer) Install(ctx context.Context) error {
	installCtx, cancel := context.WithTimeout(ctx, i.timeout+helm.ContextTimeoutBuffer)
	defer cancel()

	err := helm.InstallChartWithRetry(installCtx, i.client, i.chartSpec(), "crossplane")
	if err != nil {
		return fmt.Errorf("installing crossplane chart: %w", err)
	}

	return nil
}

// WaitForCoreRollout blocks until the crossplane deployment completes its
// rollout. The core deployment serves the package manager, so nothing can be
// installed into the control plane before this succeeds.
func (i *Installer) WaitForCoreRollout(ctx context.Context) error {
	return i.waitForDeployment(ctx, coreDeploymentName)
}

// WaitForRBACRollout blocks until the crossplane-rbac-manager deployment
// completes its rollout. Package installation does not depend on the RBAC
// manager, so callers may tolerate this wait failing.
func (i *Installer) WaitForRBACRollout(ctx context.Context) error {
	return i.waitForDeployment(ctx, rbacDeploymentName)
}

// Uninstall removes the Crossplane Helm release. A release that is already
// gone is not an error, keeping teardown idempotent.
func (i *Installer) Uninstall(ctx context.Context) error {
	err := i.client.UninstallRelease(ctx, ReleaseName, Namespace)
	if err != nil {
		if isReleaseNotFound(err) {
			return nil
		}

		return fmt.Errorf("failed to uninstall crossplane release: %w", err)
	}

	return nil
}

func (i *Installer) chartSpec() *helm.ChartSpec {
	return &helm.ChartSpec{
		ReleaseName:     ReleaseName,
		ChartName:       chartName,
		Namespace:       Namespace,
		Version:         i.version,
		RepoURL:         repoURL,
		CreateNamespace: true,
		Atomic:          true,
		Silent:          true,
		UpgradeCRDs:     true,
		Timeout:         i.timeout,
	}
}

func (i *Installer) waitForDeployment(ctx context.Context, name string) error {
	clientset, err := newKubernetesClient(i.kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	err = readiness.WaitForDeploymentReady(
		ctx,
		clientset,
		rolloutPollInterval,
		i.waitTimeout,
		Namespace,
		name,
	)
	if err != nil {
		return fmt.Errorf("deployment %s/%s did not become ready: %w", Namespace, name, err)
	}

	return nil
}

// isReleaseNotFound matches the error text Helm returns when uninstalling a
// release that does not exist. Helm does not expose a sentinel for it through
// the uninstall action, so the text is the available signal.
func isReleaseNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "release: not found")
}
