package xpkginstaller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	apimeta "k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"sigs.k8s.io/controller-runtime/pkg/client"

	crossplaneinstaller "github.com/devantler-tech/kindplane/pkg/svc/installer/crossplane"
)

const (
	// RevisionLabel marks workloads owned by a package revision.
	RevisionLabel = "pkg.crossplane.io/revision"

	purgeTimeout  = 60 * time.Second
	purgeInterval = 2 * time.Second
)

// PackageCRDNames are the pkg.crossplane.io definitions removed by force-clean.
//
//nolint:gochecknoglobals // package-level constant list
var PackageCRDNames = []string{
	"providers.pkg.crossplane.io",
	"providerrevisions.pkg.crossplane.io",
	"functions.pkg.crossplane.io",
	"functionrevisions.pkg.crossplane.io",
}

var errPurgeNotConverged = errors.New("workload purge did not converge")

// StripFunctionRevisionFinalizers clears finalizers from every
// FunctionRevision and deletes them without waiting. The function runtime
// controllers are typically gone by teardown time, so their finalizers would
// otherwise block deletion forever.
func (i *Installer) StripFunctionRevisionFinalizers(ctx context.Context) error {
	packageClient, err := i.packageClient()
	if err != nil {
		return err
	}

	revisions := &FunctionRevisionList{}

	err = packageClient.List(ctx, revisions)
	if err != nil {
		if apimeta.IsNoMatchError(err) {
			// The CRD is already gone, so no revisions can exist.
			return nil
		}

		return fmt.Errorf("failed to list function revisions: %w", err)
	}

	for idx := range revisions.Items {
		revision := &revisions.Items[idx]

		err = clearFinalizers(ctx, packageClient, revision)
		if err != nil {
			return err
		}

		err = packageClient.Delete(ctx, revision)
		if err != nil && !apierrors.IsNotFound(err) {
			return fmt.Errorf("failed to delete function revision %s: %w", revision.Name, err)
		}
	}

	return nil
}

// clearFinalizers removes all finalizers with a merge patch so deletion is
// not blocked by controllers that no longer run.
func clearFinalizers(
	ctx context.Context,
	packageClient client.Client,
	revision *FunctionRevision,
) error {
	if len(revision.Finalizers) == 0 {
		return nil
	}

	patched := revision.DeepCopy()
	patched.Finalizers = nil

	err := packageClient.Patch(ctx, patched, client.MergeFrom(revision))
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf(
			"failed to clear finalizers on function revision %s: %w",
			revision.Name,
			err,
		)
	}

	return nil
}

// DeleteProvider deletes the named Provider. A provider that is already gone
// counts as success.
func (i *Installer) DeleteProvider(ctx context.Context, name string) error {
	packageClient, err := i.packageClient()
	if err != nil {
		return err
	}

	provider := &Provider{ObjectMeta: metav1.ObjectMeta{Name: name}}

	err = packageClient.Delete(ctx, provider)
	if err != nil && !apierrors.IsNotFound(err) && !apimeta.IsNoMatchError(err) {
		return fmt.Errorf("failed to delete provider %s: %w", name, err)
	}

	return nil
}

// DeleteFunction deletes the named Function. A function that is already gone
// counts as success.
func (i *Installer) DeleteFunction(ctx context.Context, name string) error {
	packageClient, err := i.packageClient()
	if err != nil {
		return err
	}

	function := &Function{ObjectMeta: metav1.ObjectMeta{Name: name}}

	err = packageClient.Delete(ctx, function)
	if err != nil && !apierrors.IsNotFound(err) && !apimeta.IsNoMatchError(err) {
		return fmt.Errorf("failed to delete function %s: %w", name, err)
	}

	return nil
}

// PurgeRevisionWorkloads removes controller-managed workloads left in the
// control-plane namespace after package deletion: first deployments carrying
// the revision label, then a bounded sweep of deployments and pods whose
// names start with one of the given package names. The sweep stops early
// once a pass finds nothing and reports errPurgeNotConverged when workloads
// keep reappearing past the purge deadline.
func (i *Installer) PurgeRevisionWorkloads(ctx context.Context, packageNames []string) error {
	clientset, err := newKubernetesClient(i.kubeconfig)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	err = deleteLabelledDeployments(ctx, clientset)
	if err != nil {
		return err
	}

	return sweepNamedWorkloads(ctx, clientset, packageNames)
}

// deleteLabelledDeployments deletes every deployment in the control-plane
// namespace that carries the package-revision label.
func deleteLabelledDeployments(ctx context.Context, clientset kubernetes.Interface) error {
	deployments := clientset.AppsV1().Deployments(crossplaneinstaller.Namespace)

	labelled, err := deployments.List(ctx, metav1.ListOptions{LabelSelector: RevisionLabel})
	if err != nil {
		return fmt.Errorf("failed to list revision-labelled deployments: %w", err)
	}

	for idx := range labelled.Items {
		name := labelled.Items[idx].Name

		err = deployments.Delete(ctx, name, metav1.DeleteOptions{})
		if err != nil && !apierrors.IsNotFound(err) {
			return fmt.Errorf("failed to delete deployment %s: %w", name, err)
		}
	}

	return nil
}

// sweepNamedWorkloads repeatedly deletes deployments and pods whose names
// start with a package name, until a pass finds nothing or the purge
// deadline passes. Controllers may recreate workloads while their parent
// packages are still terminating, hence the repeated passes.
func sweepNamedWorkloads(
	ctx context.Context,
	clientset kubernetes.Interface,
	packageNames []string,
) error {
	waitCtx, cancel := context.WithTimeout(ctx, purgeTimeout)
	defer cancel()

	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		found, err := sweepOnce(waitCtx, clientset, packageNames)
		if err != nil {
			return err
		}

		if found == 0 {
			return nil
		}

		select {
		case <-waitCtx.Done():
			return fmt.Errorf("%w within %s", errPurgeNotConverged, purgeTimeout)
		case <-ticker.C:
		}
	}
}

// sweepOnce deletes matching deployments and pods and reports how many it found.
func sweepOnce(
	ctx context.Context,
	clientset kubernetes.Interface,
	packageNames []string,
) (int, error) {
	found := 0

	deployments := clientset.AppsV1().Deployments(crossplaneinstaller.Namespace)

	deploymentList, err := deployments.List(ctx, metav1.ListOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to list deployments: %w", err)
	}

	for idx := range deploymentList.Items {
		name := deploymentList.Items[idx].Name
		if !hasPackagePrefix(name, packageNames) {
			continue
		}

		found++

		err = deployments.Delete(ctx, name, metav1.DeleteOptions{})
		if err != nil && !apierrors.IsNotFound(err) {
			return found, fmt.Errorf("failed to delete deployment %s: %w", name, err)
		}
	}

	pods := clientset.CoreV1().Pods(crossplaneinstaller.Namespace)

	podList, err := pods.List(ctx, metav1.ListOptions{})
	if err != nil {
		return found, fmt.Errorf("failed to list pods: %w", err)
	}

	for idx := range podList.Items {
		name := podList.Items[idx].Name
		if !hasPackagePrefix(name, packageNames) {
			continue
		}

		found++

		err = pods.Delete(ctx, name, metav1.DeleteOptions{})
		if err != nil && !apierrors.IsNotFound(err) {
			return found, fmt.Errorf("failed to delete pod %s: %w", name, err)
		}
	}

	return found, nil
}

// hasPackagePrefix returns true when the workload name starts with one of
// the package names.
func hasPackagePrefix(name string, packageNames []string) bool {
	for _, prefix := range packageNames {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}

	return false
}

// DeletePackageCRDs force-deletes the package CRDs, cascading removal of any
// remaining package resources. Definitions that are already absent count as
// success.
func (i *Installer) DeletePackageCRDs(ctx context.Context) error {
	restConfig, err := loadRESTConfig(i.kubeconfig)
	if err != nil {
		return err
	}

	apiextClient, err := newAPIExtensionsClient(restConfig)
	if err != nil {
		return err
	}

	for _, crdName := range PackageCRDNames {
		crd := &apiextensionsv1.CustomResourceDefinition{
			ObjectMeta: metav1.ObjectMeta{Name: crdName},
		}

		err = apiextClient.Delete(ctx, crd)
		if err != nil && !apierrors.IsNotFound(err) {
			return fmt.Errorf("failed to delete CRD %s: %w", crdName, err)
		}
	}

	return nil
}
