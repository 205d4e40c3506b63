// Package bootstrap drives the end-to-end up and down flows: the container
// engine gate, cluster lifecycle, control-plane install, and package installs
// with health waits on the way up, and the ordered teardown steps on the way
// down. The fatal versus best-effort classification of every step lives here
// and nowhere else.
package bootstrap

import (
	"context"
	"errors"
	"io"
	"time"

	"k8s.io/client-go/kubernetes"

	"github.com/devantler-tech/kindplane/pkg/apis/bootstrap/v1alpha1"
	"github.com/devantler-tech/kindplane/pkg/cli/ui/confirm"
	"github.com/devantler-tech/kindplane/pkg/k8s"
)

// ErrConfirmationDeclined is returned when the user withholds confirmation
// for a destructive operation.
var ErrConfirmationDeclined = errors.New("confirmation declined")

// clusterPollInterval is how often the post-create cluster readiness waits
// probe the API server and nodes.
const clusterPollInterval = 2 * time.Second

//nolint:gochecknoglobals // Allows mocking for tests
var newKubernetesClient = func(kubeconfig string) (kubernetes.Interface, error) {
	return k8s.NewClientset(kubeconfig)
}

// EngineChecker verifies the container engine before any orchestration starts.
type EngineChecker interface {
	Check(ctx context.Context) error
}

// ClusterProvisioner manages the kind cluster lifecycle.
type ClusterProvisioner interface {
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name string) error
	Delete(ctx context.Context, name string) error
}

// CrossplaneInstaller converges the Crossplane control-plane release.
type CrossplaneInstaller interface {
	EnsureRepository(ctx context.Context) error
	RefreshRepositories(ctx context.Context) error
	Install(ctx context.Context) error
	WaitForCoreRollout(ctx context.Context) error
	WaitForRBACRollout(ctx context.Context) error
	Uninstall(ctx context.Context) error
}

// PackageInstaller applies, watches, and removes Crossplane packages.
type PackageInstaller interface {
	EnsurePackageAPIEstablished(ctx context.Context) error
	ApplyProvider(ctx context.Context, name, pkg string) error
	ApplyFunction(ctx context.Context, name, pkg string) error
	WaitHealthy(ctx context.Context, kind, name string) error
	StripFunctionRevisionFinalizers(ctx context.Context) error
	DeleteProvider(ctx context.Context, name string) error
	DeleteFunction(ctx context.Context, name string) error
	PurgeRevisionWorkloads(ctx context.Context, packageNames []string) error
	DeletePackageCRDs(ctx context.Context) error
}

// Orchestrator sequences the bootstrap and teardown flows over its
// collaborators. It owns all user-facing stage output; the collaborators
// only report errors and timeout diagnostics.
type Orchestrator struct {
	config     *v1alpha1.Bootstrap
	out        io.Writer
	engine     EngineChecker
	clusters   ClusterProvisioner
	crossplane CrossplaneInstaller
	packages   PackageInstaller
	confirm    confirm.Func
}

// NewOrchestrator constructs an Orchestrator over the given collaborators.
// The configuration is treated as immutable and must already be validated.
func NewOrchestrator(
	config *v1alpha1.Bootstrap,
	out io.Writer,
	engine EngineChecker,
	clusters ClusterProvisioner,
	crossplane CrossplaneInstaller,
	packages PackageInstaller,
	confirmFunc confirm.Func,
) *Orchestrator {
	return &Orchestrator{
		config:     config,
		out:        out,
		engine:     engine,
		clusters:   clusters,
		crossplane: crossplane,
		packages:   packages,
		confirm:    confirmFunc,
	}
}

// packageNames returns the configured package resource names in install order.
func (o *Orchestrator) packageNames() []string {
	packages := o.config.Spec.Packages

	return []string{
		packages.Provider.Name,
		packages.PatchAndTransform.Name,
		packages.AutoReady.Name,
	}
}
