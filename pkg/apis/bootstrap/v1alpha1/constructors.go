package v1alpha1

import metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

// NewBootstrap creates a Bootstrap with every field set to its default and
// the provided options applied on top. The result is treated as immutable by
// every consumer.
func NewBootstrap(options ...Option) *Bootstrap {
	bootstrap := &Bootstrap{
		TypeMeta: metav1.TypeMeta{
			Kind:       Kind,
			APIVersion: APIVersion,
		},
		Spec: NewSpec(),
	}

	for _, option := range options {
		option(bootstrap)
	}

	return bootstrap
}

// NewSpec creates a Spec with default values.
func NewSpec() Spec {
	return Spec{
		Cluster: ClusterSpec{
			Name:       DefaultClusterName,
			NodeImage:  DefaultNodeImage,
			Kubeconfig: DefaultKubeconfig,
		},
		Crossplane: CrossplaneSpec{
			Version: DefaultCrossplaneVersion,
		},
		Packages:    NewPackagesSpec(),
		Cleanup:     CleanupSpec{},
		WaitTimeout: DefaultWaitTimeout(),
	}
}

// NewPackagesSpec creates a PackagesSpec with the conventional package names,
// repositories, and default versions.
func NewPackagesSpec() PackagesSpec {
	return PackagesSpec{
		Provider: PackageRef{
			Name:       DefaultProviderName,
			Repository: DefaultProviderRepository,
			Version:    DefaultProviderVersion,
		},
		PatchAndTransform: PackageRef{
			Name:       DefaultPatchAndTransformName,
			Repository: DefaultPatchAndTransformRepository,
			Version:    DefaultPatchAndTransformVersion,
		},
		AutoReady: PackageRef{
			Name:       DefaultAutoReadyName,
			Repository: DefaultAutoReadyRepository,
			Version:    DefaultAutoReadyVersion,
		},
	}
}
