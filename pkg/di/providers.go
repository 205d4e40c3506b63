package di

import (
	"context"
	"fmt"
	"io"

	"github.com/samber/do/v2"

	"github.com/devantler-tech/kindplane/pkg/apis/bootstrap/v1alpha1"
	"github.com/devantler-tech/kindplane/pkg/cli/ui/confirm"
	"github.com/devantler-tech/kindplane/pkg/client/helm"
	"github.com/devantler-tech/kindplane/pkg/k8s"
	"github.com/devantler-tech/kindplane/pkg/svc/bootstrap"
	crossplaneinstaller "github.com/devantler-tech/kindplane/pkg/svc/installer/crossplane"
	xpkginstaller "github.com/devantler-tech/kindplane/pkg/svc/installer/xpkg"
	"github.com/devantler-tech/kindplane/pkg/svc/provider"
	kindprovisioner "github.com/devantler-tech/kindplane/pkg/svc/provisioner/cluster/kind"
)

// Dependency providers.

// Bootstrapper runs the bootstrap flows end to end.
type Bootstrapper interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
}

// BootstrapperFactory builds a Bootstrapper for a validated configuration.
// User-facing output and confirmation prompts go to out.
type BootstrapperFactory func(config *v1alpha1.Bootstrap, out io.Writer) (Bootstrapper, error)

// NewRuntime constructs the shared runtime container used by the root command
// and tests. It registers the default container engine checker and the
// bootstrapper factory that wires the real collaborators.
func NewRuntime() *Runtime {
	return New(
		provideEngineChecker,
		provideBootstrapperFactory,
	)
}

// provideEngineChecker registers the container engine gate dependency.
func provideEngineChecker(i Injector) error {
	do.Provide(i, func(Injector) (bootstrap.EngineChecker, error) {
		return provider.NewDockerChecker(), nil
	})

	return nil
}

// provideBootstrapperFactory registers the bootstrapper factory dependency.
func provideBootstrapperFactory(i Injector) error {
	do.Provide(i, func(injector Injector) (BootstrapperFactory, error) {
		engine, err := ResolveEngineChecker(injector)
		if err != nil {
			return nil, err
		}

		return func(config *v1alpha1.Bootstrap, out io.Writer) (Bootstrapper, error) {
			return newBootstrapper(config, out, engine)
		}, nil
	})

	return nil
}

// newBootstrapper wires the orchestrator over the kind provisioner, the Helm
// backed Crossplane installer, and the package installer. The kubeconfig path
// is expanded once here since the Helm SDK does not resolve ~ itself.
func newBootstrapper(
	config *v1alpha1.Bootstrap,
	out io.Writer,
	engine bootstrap.EngineChecker,
) (Bootstrapper, error) {
	spec := config.Spec

	kubeconfig, err := k8s.ExpandHomePath(spec.Cluster.Kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("expand kubeconfig path: %w", err)
	}

	clusters := kindprovisioner.NewKindClusterProvisioner(
		spec.Cluster.NodeImage,
		kubeconfig,
		kindprovisioner.NewDefaultProviderAdapter(out),
	)

	helmClient, err := helm.NewClient(kubeconfig, "")
	if err != nil {
		return nil, fmt.Errorf("create helm client: %w", err)
	}

	waitTimeout := spec.WaitTimeout.Duration()
	crossplane := crossplaneinstaller.NewInstaller(
		helmClient,
		kubeconfig,
		spec.Crossplane.Version,
		helm.DefaultTimeout,
		waitTimeout,
	)
	packages := xpkginstaller.NewInstaller(
		kubeconfig,
		out,
		xpkginstaller.DefaultPollInterval,
		waitTimeout,
	)

	return bootstrap.NewOrchestrator(
		config,
		out,
		engine,
		clusters,
		crossplane,
		packages,
		confirm.New(out, spec.AssumeYes),
	), nil
}
