package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/devantler-tech/kindplane/pkg/apis/bootstrap/v1alpha1"
	"github.com/devantler-tech/kindplane/pkg/k8s/readiness"
	xpkginstaller "github.com/devantler-tech/kindplane/pkg/svc/installer/xpkg"
	"github.com/devantler-tech/kindplane/pkg/utils/notify"
	"github.com/devantler-tech/kindplane/pkg/utils/ops"
)

// Up converges the environment to the fully bootstrapped end state: a
// running kind cluster with Crossplane installed and the provider plus both
// function packages healthy. Every remote step is idempotent, so rerunning
// after a partial failure resumes instead of starting over.
func (o *Orchestrator) Up(ctx context.Context) error {
	notify.Titlef(o.out, "🚀", "Prepare cluster...")

	err := o.checkEngine(ctx)
	if err != nil {
		return err
	}

	err = o.ensureCluster(ctx)
	if err != nil {
		return err
	}

	err = o.installCrossplane(ctx)
	if err != nil {
		return err
	}

	err = o.installPackages(ctx)
	if err != nil {
		return err
	}

	if o.config.Spec.DryRun {
		notify.Successf(o.out, "dry-run complete, no changes made")

		return nil
	}

	notify.Successf(o.out, "cluster '%s' is bootstrapped", o.config.Spec.Cluster.Name)

	return nil
}

// checkEngine runs the local container engine gate. It runs in dry-run too,
// since it performs only local checks.
func (o *Orchestrator) checkEngine(ctx context.Context) error {
	notify.Activityf(o.out, "checking container engine")

	return ops.Run(o.out, "check container engine", ops.Fatal, func() error {
		return o.engine.Check(ctx)
	})
}

// ensureCluster brings the kind cluster to the configured state: skipped,
// reused, recreated after confirmation, or freshly created. Fresh clusters
// are held until the API server and a node report ready.
func (o *Orchestrator) ensureCluster(ctx context.Context) error {
	cluster := o.config.Spec.Cluster

	if cluster.Skip {
		notify.Infof(o.out, "using the cluster behind the current kubeconfig context")

		return nil
	}

	if o.config.Spec.DryRun {
		notify.Activityf(o.out, "dry-run: would ensure kind cluster '%s' exists", cluster.Name)

		return nil
	}

	exists, err := o.clusters.Exists(ctx, cluster.Name)
	if err != nil {
		return fmt.Errorf("check cluster existence: %w", err)
	}

	switch {
	case exists && !cluster.Recreate:
		notify.Infof(o.out, "cluster '%s' already exists, reusing it", cluster.Name)

		return nil
	case exists:
		err = o.recreateCluster(ctx, cluster.Name)
	default:
		err = o.createCluster(ctx, cluster.Name)
	}

	if err != nil {
		return err
	}

	return o.waitForClusterReady(ctx)
}

func (o *Orchestrator) recreateCluster(ctx context.Context, name string) error {
	question := fmt.Sprintf("This will delete and recreate cluster '%s'.", name)
	if !o.confirm(question) {
		return fmt.Errorf("%w: cluster recreation", ErrConfirmationDeclined)
	}

	notify.Activityf(o.out, "deleting cluster '%s'", name)

	err := ops.Run(o.out, "delete kind cluster", ops.Fatal, func() error {
		return o.clusters.Delete(ctx, name)
	})
	if err != nil {
		return err
	}

	return o.createCluster(ctx, name)
}

func (o *Orchestrator) createCluster(ctx context.Context, name string) error {
	notify.Activityf(o.out, "creating cluster '%s'", name)

	err := ops.Run(o.out, "create kind cluster", ops.Fatal, func() error {
		return o.clusters.Create(ctx, name)
	})
	if err != nil {
		return err
	}

	notify.Successf(o.out, "cluster created")

	return nil
}

// waitForClusterReady blocks until the API server answers and at least one
// node is Ready, so the Helm install does not race cluster startup.
func (o *Orchestrator) waitForClusterReady(ctx context.Context) error {
	clientset, err := newKubernetesClient(o.config.Spec.Cluster.Kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	timeout := o.config.Spec.WaitTimeout.Duration()

	notify.Activityf(o.out, "waiting for the API server to respond")

	err = ops.Run(o.out, "wait for the API server", ops.Fatal, func() error {
		return readiness.WaitForAPIServerReady(ctx, clientset, clusterPollInterval, timeout)
	})
	if err != nil {
		return err
	}

	notify.Activityf(o.out, "waiting for a ready node")

	return ops.Run(o.out, "wait for a ready node", ops.Fatal, func() error {
		return readiness.WaitForNodeReady(ctx, clientset, clusterPollInterval, timeout)
	})
}

// installCrossplane converges the control-plane release. Repository
// registration and index refresh are best-effort since a warm local cache
// can serve the chart; the install and the core rollout wait are fatal.
func (o *Orchestrator) installCrossplane(ctx context.Context) error {
	version := o.config.Spec.Crossplane.Version

	notify.Titlef(o.out, "📦", "Install Crossplane...")

	if o.config.Spec.DryRun {
		notify.Activityf(
			o.out,
			"dry-run: would install crossplane chart %s and wait for its rollout",
			version,
		)

		return nil
	}

	notify.Activityf(o.out, "installing crossplane %s", version)

	_ = ops.Run(o.out, "add crossplane-stable helm repository", ops.BestEffort, func() error {
		return o.crossplane.EnsureRepository(ctx)
	})

	_ = ops.Run(o.out, "update helm repositories", ops.BestEffort, func() error {
		return o.crossplane.RefreshRepositories(ctx)
	})

	err := ops.Run(o.out, "install crossplane chart", ops.Fatal, func() error {
		return o.crossplane.Install(ctx)
	})
	if err != nil {
		return err
	}

	notify.Activityf(o.out, "waiting for the crossplane deployment rollout")

	err = ops.Run(o.out, "wait for the crossplane rollout", ops.Fatal, func() error {
		return o.crossplane.WaitForCoreRollout(ctx)
	})
	if err != nil {
		return err
	}

	_ = ops.Run(o.out, "wait for the crossplane-rbac-manager rollout", ops.BestEffort, func() error {
		return o.crossplane.WaitForRBACRollout(ctx)
	})

	notify.Successf(o.out, "crossplane is ready")

	return nil
}

// installPackages applies the provider and both functions strictly in order,
// waiting for each to report healthy before submitting the next. Submitting
// all three at once would let an early package's startup starve the later
// ones, and a later health signal means nothing while an earlier package is
// still failing.
func (o *Orchestrator) installPackages(ctx context.Context) error {
	notify.Titlef(o.out, "🧩", "Install Crossplane packages...")

	packages := o.config.Spec.Packages
	installs := []struct {
		kind string
		ref  v1alpha1.PackageRef
	}{
		{xpkginstaller.ProviderKind, packages.Provider},
		{xpkginstaller.FunctionKind, packages.PatchAndTransform},
		{xpkginstaller.FunctionKind, packages.AutoReady},
	}

	if o.config.Spec.DryRun {
		for _, install := range installs {
			notify.Activityf(
				o.out,
				"dry-run: would apply %s '%s' (%s) and wait for it to report healthy",
				strings.ToLower(install.kind),
				install.ref.Name,
				install.ref.Package(),
			)
		}

		return nil
	}

	err := ops.Run(o.out, "wait for the package API", ops.Fatal, func() error {
		return o.packages.EnsurePackageAPIEstablished(ctx)
	})
	if err != nil {
		return err
	}

	for _, install := range installs {
		err = o.installPackage(ctx, install.kind, install.ref)
		if err != nil {
			return err
		}
	}

	return nil
}

func (o *Orchestrator) installPackage(
	ctx context.Context,
	kind string,
	ref v1alpha1.PackageRef,
) error {
	kindWord := strings.ToLower(kind)

	notify.Activityf(o.out, "applying %s '%s' (%s)", kindWord, ref.Name, ref.Package())

	apply := o.packages.ApplyFunction
	if kind == xpkginstaller.ProviderKind {
		apply = o.packages.ApplyProvider
	}

	err := ops.Run(o.out, fmt.Sprintf("apply %s %s", kindWord, ref.Name), ops.Fatal, func() error {
		return apply(ctx, ref.Name, ref.Package())
	})
	if err != nil {
		return err
	}

	err = ops.Run(
		o.out,
		fmt.Sprintf("wait for %s %s", kindWord, ref.Name),
		ops.Fatal,
		func() error {
			return o.packages.WaitHealthy(ctx, kind, ref.Name)
		},
	)
	if err != nil {
		return err
	}

	notify.Successf(o.out, "%s '%s' is healthy", kindWord, ref.Name)

	return nil
}
