package v1alpha1

const (
	// DefaultClusterName is the kind cluster name used when none is given.
	DefaultClusterName = "crossplane"
	// DefaultNodeImage is the kind node image used when none is given.
	DefaultNodeImage = "kindest/node:v1.34.0"
	// DefaultKubeconfig is the kubeconfig path used when none is given.
	DefaultKubeconfig = "~/.kube/config"
	// DefaultCrossplaneVersion is the Crossplane Helm chart version installed
	// when none is given.
	DefaultCrossplaneVersion = "1.20.0"

	// DefaultProviderName is the resource name of the cloud provider package.
	DefaultProviderName = "provider-aws-s3"
	// DefaultProviderRepository is the OCI repository of the cloud provider package.
	DefaultProviderRepository = "xpkg.upbound.io/upbound/provider-aws-s3"
	// DefaultProviderVersion is the provider package version installed when
	// none is given.
	DefaultProviderVersion = "v1.13.0"

	// DefaultPatchAndTransformName is the resource name of the
	// patch-and-transform function package.
	DefaultPatchAndTransformName = "function-patch-and-transform"
	// DefaultPatchAndTransformRepository is the OCI repository of the
	// patch-and-transform function package.
	DefaultPatchAndTransformRepository = "xpkg.upbound.io/crossplane-contrib/function-patch-and-transform"
	// DefaultPatchAndTransformVersion is the patch-and-transform function
	// version installed when none is given.
	DefaultPatchAndTransformVersion = "v0.9.0"

	// DefaultAutoReadyName is the resource name of the auto-ready function package.
	DefaultAutoReadyName = "function-auto-ready"
	// DefaultAutoReadyRepository is the OCI repository of the auto-ready
	// function package.
	DefaultAutoReadyRepository = "xpkg.upbound.io/crossplane-contrib/function-auto-ready"
	// DefaultAutoReadyVersion is the auto-ready function version installed
	// when none is given.
	DefaultAutoReadyVersion = "v0.4.0"
)

// DefaultWaitTimeout bounds readiness and health waits when no timeout is given.
func DefaultWaitTimeout() WaitDuration {
	return WaitDuration{Magnitude: 10, Unit: DurationUnitMinutes}
}
