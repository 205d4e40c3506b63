package v1alpha1

// Option mutates a Bootstrap during construction. Options are only applied by
// NewBootstrap; afterwards the configuration is read-only.
type Option func(*Bootstrap)

// WithClusterName overrides the kind cluster name.
func WithClusterName(name string) Option {
	return func(b *Bootstrap) { b.Spec.Cluster.Name = name }
}

// WithNodeImage overrides the kind node image.
func WithNodeImage(image string) Option {
	return func(b *Bootstrap) { b.Spec.Cluster.NodeImage = image }
}

// WithKubeconfig overrides the kubeconfig path.
func WithKubeconfig(path string) Option {
	return func(b *Bootstrap) { b.Spec.Cluster.Kubeconfig = path }
}

// WithCrossplaneVersion overrides the Crossplane chart version.
func WithCrossplaneVersion(version string) Option {
	return func(b *Bootstrap) { b.Spec.Crossplane.Version = version }
}

// WithProviderVersion overrides the cloud provider package version.
func WithProviderVersion(version string) Option {
	return func(b *Bootstrap) { b.Spec.Packages.Provider.Version = version }
}

// WithPatchAndTransformVersion overrides the patch-and-transform function version.
func WithPatchAndTransformVersion(version string) Option {
	return func(b *Bootstrap) { b.Spec.Packages.PatchAndTransform.Version = version }
}

// WithAutoReadyVersion overrides the auto-ready function version.
func WithAutoReadyVersion(version string) Option {
	return func(b *Bootstrap) { b.Spec.Packages.AutoReady.Version = version }
}

// WithWaitTimeout overrides the wait timeout.
func WithWaitTimeout(timeout WaitDuration) Option {
	return func(b *Bootstrap) { b.Spec.WaitTimeout = timeout }
}

// WithSkipCluster skips cluster lifecycle operations and reuses the current
// kubeconfig context.
func WithSkipCluster(skip bool) Option {
	return func(b *Bootstrap) { b.Spec.Cluster.Skip = skip }
}

// WithRecreate deletes an existing cluster before creating a fresh one.
func WithRecreate(recreate bool) Option {
	return func(b *Bootstrap) { b.Spec.Cluster.Recreate = recreate }
}

// WithDeleteCluster cascades cleanup to deleting the kind cluster.
func WithDeleteCluster(deleteCluster bool) Option {
	return func(b *Bootstrap) { b.Spec.Cleanup.DeleteCluster = deleteCluster }
}

// WithForceClean deletes the package CRDs during cleanup.
func WithForceClean(forceClean bool) Option {
	return func(b *Bootstrap) { b.Spec.Cleanup.ForceClean = forceClean }
}

// WithAssumeYes answers every confirmation prompt affirmatively.
func WithAssumeYes(assumeYes bool) Option {
	return func(b *Bootstrap) { b.Spec.AssumeYes = assumeYes }
}

// WithDryRun replaces every remote call with a log line.
func WithDryRun(dryRun bool) Option {
	return func(b *Bootstrap) { b.Spec.DryRun = dryRun }
}

// WithVerbose enables debug-level diagnostics.
func WithVerbose(verbose bool) Option {
	return func(b *Bootstrap) { b.Spec.Verbose = verbose }
}
