package v1alpha1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

const (
	// Group is the API group for kindplane.
	Group = "kindplane.devantler.tech"
	// Version is the API version for kindplane.
	Version = "v1alpha1"
	// Kind is the kind for bootstrap configurations.
	Kind = "Bootstrap"
	// APIVersion is the full API version for kindplane.
	APIVersion = Group + "/" + Version
)

// --- Core Types ---

// Bootstrap is the immutable run configuration for one kindplane invocation.
// It is assembled once from defaults overridden by flags and environment
// variables, validated, and then passed read-only to every component.
type Bootstrap struct {
	metav1.TypeMeta `json:",inline"`

	Spec Spec `json:"spec,omitzero"`
}

// Spec defines the desired end state of a kindplane run.
type Spec struct {
	Cluster    ClusterSpec    `json:"cluster,omitzero"`
	Crossplane CrossplaneSpec `json:"crossplane,omitzero"`
	Packages   PackagesSpec   `json:"packages,omitzero"`
	Cleanup    CleanupSpec    `json:"cleanup,omitzero"`

	// WaitTimeout bounds every readiness and health wait in the run.
	WaitTimeout WaitDuration `json:"waitTimeout,omitzero"`

	// AssumeYes answers every confirmation prompt affirmatively.
	AssumeYes bool `json:"assumeYes,omitzero"`
	// DryRun replaces every remote call with a log line.
	DryRun bool `json:"dryRun,omitzero"`
	// Verbose enables debug-level diagnostics on stderr.
	Verbose bool `json:"verbose,omitzero"`
}

// ClusterSpec defines the kind cluster to provision or tear down.
type ClusterSpec struct {
	Name       string `json:"name,omitzero"`
	NodeImage  string `json:"nodeImage,omitzero"`
	Kubeconfig string `json:"kubeconfig,omitzero"`

	// Skip assumes the current kubeconfig context already points at a usable
	// cluster and performs no lifecycle operations on it.
	Skip bool `json:"skip,omitzero"`
	// Recreate deletes an existing cluster before creating a fresh one.
	// Deletion requires confirmation unless AssumeYes is set.
	Recreate bool `json:"recreate,omitzero"`
}

// CrossplaneSpec defines the control-plane release to converge to.
type CrossplaneSpec struct {
	// Version is the Helm chart version of the Crossplane release.
	Version string `json:"version,omitzero"`
}

// PackagesSpec holds the provider package and both function packages.
type PackagesSpec struct {
	Provider          PackageRef `json:"provider,omitzero"`
	PatchAndTransform PackageRef `json:"patchAndTransform,omitzero"`
	AutoReady         PackageRef `json:"autoReady,omitzero"`
}

// PackageRef identifies one Crossplane package by resource name, OCI
// repository, and version tag. Name and Repository are fixed by convention;
// only Version is expected to vary between runs.
type PackageRef struct {
	Name       string `json:"name,omitzero"`
	Repository string `json:"repository,omitzero"`
	Version    string `json:"version,omitzero"`
}

// Package returns the full OCI package reference including the version tag.
func (r PackageRef) Package() string {
	return r.Repository + ":" + r.Version
}

// CleanupSpec defines the optional escalations of a teardown run.
type CleanupSpec struct {
	// DeleteCluster cascades cleanup to deleting the kind cluster itself.
	DeleteCluster bool `json:"deleteCluster,omitzero"`
	// ForceClean deletes the package CRDs as a last resort against stuck
	// reconciliation.
	ForceClean bool `json:"forceClean,omitzero"`
}
