// Package xpkginstaller applies Crossplane Provider and Function packages
// through the pkg.crossplane.io API, waits for them to report healthy, and
// removes them again during teardown.
package xpkginstaller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/rest"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

const (
	providersCRDName = "providers.pkg.crossplane.io"

	// DefaultPollInterval is the package-health poll interval used when the
	// caller has no reason to choose another one.
	DefaultPollInterval = 3 * time.Second

	crdEstablishTimeout  = 2 * time.Minute
	crdEstablishInterval = 2 * time.Second
)

var errCRDNotEstablished = errors.New("CRD is not yet established")

// Installer upserts Provider and Function packages and polls their health.
// Apply is declarative: an existing resource has its spec replaced, a missing
// one is created, and the package manager reconciles the rest.
type Installer struct {
	kubeconfig string
	out        io.Writer
	interval   time.Duration
	timeout    time.Duration
}

// NewInstaller creates a package installer. The interval and timeout
// parameterize every wait the installer performs; diagnostics for failed
// waits are written to out.
func NewInstaller(
	kubeconfig string,
	out io.Writer,
	interval time.Duration,
	timeout time.Duration,
) *Installer {
	return &Installer{
		kubeconfig: kubeconfig,
		out:        out,
		interval:   interval,
		timeout:    timeout,
	}
}

// EnsurePackageAPIEstablished waits for the Provider CRD to be established so
// the first package apply does not race the control-plane rollout. The chart
// registers the CRDs, but the API server accepts writes only once it marks
// them established.
func (i *Installer) EnsurePackageAPIEstablished(ctx context.Context) error {
	restConfig, err := loadRESTConfig(i.kubeconfig)
	if err != nil {
		return err
	}

	return waitForCRDEstablished(
		ctx,
		restConfig,
		providersCRDName,
		crdEstablishTimeout,
		crdEstablishInterval,
	)
}

// ApplyProvider creates or updates the named Provider to run the given
// OCI package reference.
func (i *Installer) ApplyProvider(ctx context.Context, name, pkg string) error {
	packageClient, err := i.packageClient()
	if err != nil {
		return err
	}

	desired := &Provider{
		TypeMeta: metav1.TypeMeta{
			APIVersion: packageGroupVersion.String(),
			Kind:       ProviderKind,
		},
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Spec:       PackageSpec{Package: pkg},
	}

	return upsertProvider(ctx, packageClient, desired)
}

// ApplyFunction creates or updates the named Function to run the given
// OCI package reference.
func (i *Installer) ApplyFunction(ctx context.Context, name, pkg string) error {
	packageClient, err := i.packageClient()
	if err != nil {
		return err
	}

	desired := &Function{
		TypeMeta: metav1.TypeMeta{
			APIVersion: packageGroupVersion.String(),
			Kind:       FunctionKind,
		},
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Spec:       PackageSpec{Package: pkg},
	}

	return upsertFunction(ctx, packageClient, desired)
}

// upsertProvider attempts to create or update a Provider once.
func upsertProvider(ctx context.Context, packageClient client.Client, desired *Provider) error {
	key := client.ObjectKeyFromObject(desired)
	existing := &Provider{}

	err := packageClient.Get(ctx, key, existing)
	if err != nil {
		if apierrors.IsNotFound(err) {
			createErr := packageClient.Create(ctx, desired)
			if createErr != nil {
				return fmt.Errorf("create Provider %s: %w", key.Name, createErr)
			}

			return nil
		}

		return fmt.Errorf("failed to get Provider %s: %w", key.Name, err)
	}

	existing.Spec = desired.Spec

	err = packageClient.Update(ctx, existing)
	if err != nil {
		return fmt.Errorf("failed to update Provider %s: %w", key.Name, err)
	}

	return nil
}

// upsertFunction attempts to create or update a Function once.
func upsertFunction(ctx context.Context, packageClient client.Client, desired *Function) error {
	key := client.ObjectKeyFromObject(desired)
	existing := &Function{}

	err := packageClient.Get(ctx, key, existing)
	if err != nil {
		if apierrors.IsNotFound(err) {
			createErr := packageClient.Create(ctx, desired)
			if createErr != nil {
				return fmt.Errorf("create Function %s: %w", key.Name, createErr)
			}

			return nil
		}

		return fmt.Errorf("failed to get Function %s: %w", key.Name, err)
	}

	existing.Spec = desired.Spec

	err = packageClient.Update(ctx, existing)
	if err != nil {
		return fmt.Errorf("failed to update Function %s: %w", key.Name, err)
	}

	return nil
}

func (i *Installer) packageClient() (client.Client, error) {
	restConfig, err := loadRESTConfig(i.kubeconfig)
	if err != nil {
		return nil, err
	}

	return newPackageClient(restConfig)
}

// waitForCRDEstablished waits for the CRD to be fully established (not just
// discoverable). This ensures the API server is ready to accept requests for
// the custom resource.
func waitForCRDEstablished(
	ctx context.Context,
	restConfig *rest.Config,
	crdName string,
	timeout time.Duration,
	interval time.Duration,
) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	apiextClient, err := newAPIExtensionsClient(restConfig)
	if err != nil {
		return fmt.Errorf("failed to create apiextensions client: %w", err)
	}

	var lastErr error

	for {
		crd := &apiextensionsv1.CustomResourceDefinition{}

		err := apiextClient.Get(waitCtx, client.ObjectKey{Name: crdName}, crd)
		if err != nil {
			lastErr = err
		} else {
			if crdEstablished(crd) {
				return nil
			}

			lastErr = fmt.Errorf("%w: %s", errCRDNotEstablished, crdName)
		}

		select {
		case <-waitCtx.Done():
			if lastErr == nil {
				lastErr = waitCtx.Err()
			}

			return fmt.Errorf(
				"timed out waiting for CRD %s to be established: %w",
				crdName,
				lastErr,
			)
		case <-ticker.C:
		}
	}
}

// crdEstablished returns true when the CRD has the Established condition set to True.
func crdEstablished(crd *apiextensionsv1.CustomResourceDefinition) bool {
	for _, condition := range crd.Status.Conditions {
		if condition.Type == apiextensionsv1.Established &&
			condition.Status == apiextensionsv1.ConditionTrue {
			return true
		}
	}

	return false
}
