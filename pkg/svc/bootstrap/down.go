package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/devantler-tech/kindplane/pkg/utils/notify"
	"github.com/devantler-tech/kindplane/pkg/utils/ops"
)

// Down tears the bootstrapped state down in a fixed order: function revision
// finalizers first so nothing blocks deletion, then the packages themselves,
// a best-effort purge of leftover workloads, the Helm release, optionally
// the package CRDs, and finally the cluster. Resources that are already gone
// count as success throughout, so rerunning a partial teardown converges.
func (o *Orchestrator) Down(ctx context.Context) error {
	notify.Titlef(o.out, "🔥", "Clean up Crossplane...")

	err := o.checkEngine(ctx)
	if err != nil {
		return err
	}

	err = o.cleanupPackages(ctx)
	if err != nil {
		return err
	}

	if o.config.Spec.Cleanup.DeleteCluster {
		err = o.deleteCluster(ctx)
		if err != nil {
			return err
		}
	}

	if o.config.Spec.DryRun {
		notify.Successf(o.out, "dry-run complete, no changes made")

		return nil
	}

	notify.Successf(o.out, "cleanup complete")

	return nil
}

// cleanupPackages runs teardown steps one through five. The finalizer strip
// must precede the package deletions: the function runtime controllers are
// usually gone by now, and their finalizers would hold revision deletion
// forever.
func (o *Orchestrator) cleanupPackages(ctx context.Context) error {
	packages := o.config.Spec.Packages
	packageNames := o.packageNames()

	if o.config.Spec.DryRun {
		o.logCleanupIntents(packageNames)

		return nil
	}

	notify.Activityf(o.out, "removing provider and function packages")

	err := ops.Run(o.out, "strip function revision finalizers", ops.Fatal, func() error {
		return o.packages.StripFunctionRevisionFinalizers(ctx)
	})
	if err != nil {
		return err
	}

	err = ops.Run(
		o.out,
		fmt.Sprintf("delete provider %s", packages.Provider.Name),
		ops.Fatal,
		func() error {
			return o.packages.DeleteProvider(ctx, packages.Provider.Name)
		},
	)
	if err != nil {
		return err
	}

	for _, name := range []string{packages.PatchAndTransform.Name, packages.AutoReady.Name} {
		err = ops.Run(
			o.out,
			fmt.Sprintf("delete function %s", name),
			ops.Fatal,
			func() error {
				return o.packages.DeleteFunction(ctx, name)
			},
		)
		if err != nil {
			return err
		}
	}

	_ = ops.Run(o.out, "purge package workloads", ops.BestEffort, func() error {
		return o.packages.PurgeRevisionWorkloads(ctx, packageNames)
	})

	notify.Activityf(o.out, "uninstalling the crossplane release")

	_ = ops.Run(o.out, "uninstall crossplane release", ops.BestEffort, func() error {
		return o.crossplane.Uninstall(ctx)
	})

	if o.config.Spec.Cleanup.ForceClean {
		err = ops.Run(o.out, "delete package custom resource definitions", ops.Fatal, func() error {
			return o.packages.DeletePackageCRDs(ctx)
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// deleteCluster runs teardown step six. An absent cluster is success;
// deleting an existing one requires confirmation unless assume-yes is set.
func (o *Orchestrator) deleteCluster(ctx context.Context) error {
	name := o.config.Spec.Cluster.Name

	notify.Titlef(o.out, "🗑️", "Delete cluster...")

	if o.config.Spec.DryRun {
		notify.Activityf(o.out, "dry-run: would delete kind cluster '%s'", name)

		return nil
	}

	exists, err := o.clusters.Exists(ctx, name)
	if err != nil {
		return fmt.Errorf("check cluster existence: %w", err)
	}

	if !exists {
		notify.Infof(o.out, "cluster '%s' not found, skipping deletion", name)

		return nil
	}

	question := fmt.Sprintf("This will delete cluster '%s' and everything on it.", name)
	if !o.confirm(question) {
		return fmt.Errorf("%w: cluster deletion", ErrConfirmationDeclined)
	}

	notify.Activityf(o.out, "deleting cluster '%s'", name)

	err = ops.Run(o.out, "delete kind cluster", ops.Fatal, func() error {
		return o.clusters.Delete(ctx, name)
	})
	if err != nil {
		return err
	}

	notify.Successf(o.out, "cluster deleted")

	return nil
}

func (o *Orchestrator) logCleanupIntents(packageNames []string) {
	notify.Activityf(o.out, "dry-run: would strip function revision finalizers")
	notify.Activityf(o.out, "dry-run: would delete packages %s", strings.Join(packageNames, ", "))
	notify.Activityf(o.out, "dry-run: would purge leftover package workloads")
	notify.Activityf(o.out, "dry-run: would uninstall the crossplane release")

	if o.config.Spec.Cleanup.ForceClean {
		notify.Activityf(o.out, "dry-run: would delete the package custom resource definitions")
	}
}
