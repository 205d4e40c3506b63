package v1alpha1

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// clusterNameRegex matches DNS-1123 subdomain names: lowercase alphanumeric
// with optional hyphens. kind cluster names end up in Docker container names
// and kubeconfig contexts, which require this shape.
var clusterNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$|^[a-z]$`)

// ClusterNameMaxLength is the maximum length for a cluster name.
const ClusterNameMaxLength = 63

// Validate checks every invariant the run configuration must satisfy before
// any remote operation runs. All problems are reported at once.
func (b *Bootstrap) Validate() error {
	var problems []error

	problems = append(problems, validateClusterSpec(b.Spec.Cluster)...)
	problems = append(problems, validateCrossplaneSpec(b.Spec.Crossplane)...)
	problems = append(problems, validatePackagesSpec(b.Spec.Packages)...)

	if b.Spec.WaitTimeout.IsZero() {
		problems = append(problems, ErrWaitTimeoutRequired)
	}

	return errors.Join(problems...)
}

// ValidateClusterName validates that a cluster name is DNS-1123 compliant and
// within the length limit.
func ValidateClusterName(name string) error {
	if name == "" {
		return ErrClusterNameRequired
	}

	if len(name) > ClusterNameMaxLength {
		return fmt.Errorf(
			"%w: %q exceeds max %d characters (got %d)",
			ErrClusterNameTooLong, name, ClusterNameMaxLength, len(name),
		)
	}

	if !clusterNameRegex.MatchString(name) {
		return fmt.Errorf(
			"%w: %q must be DNS-1123 compliant "+
				"(lowercase letters, numbers, and hyphens; must start with a letter; "+
				"must not end with a hyphen)",
			ErrClusterNameInvalid, name,
		)
	}

	return nil
}

func validateClusterSpec(spec ClusterSpec) []error {
	var problems []error

	err := ValidateClusterName(spec.Name)
	if err != nil {
		problems = append(problems, err)
	}

	if spec.NodeImage == "" {
		problems = append(problems, ErrNodeImageRequired)
	}

	if spec.Kubeconfig == "" {
		problems = append(problems, ErrKubeconfigRequired)
	}

	return problems
}

func validateCrossplaneSpec(spec CrossplaneSpec) []error {
	if spec.Version == "" {
		return []error{ErrCrossplaneVersionRequired}
	}

	_, err := semver.NewVersion(spec.Version)
	if err != nil {
		return []error{fmt.Errorf("%w: %q", ErrCrossplaneVersionInvalid, spec.Version)}
	}

	return nil
}

func validatePackagesSpec(spec PackagesSpec) []error {
	var problems []error

	problems = append(problems, validatePackageRef(spec.Provider)...)
	problems = append(problems, validatePackageRef(spec.PatchAndTransform)...)
	problems = append(problems, validatePackageRef(spec.AutoReady)...)

	return problems
}

func validatePackageRef(ref PackageRef) []error {
	var problems []error

	if ref.Name == "" {
		problems = append(problems, ErrPackageNameRequired)
	}

	if ref.Repository == "" {
		problems = append(problems, fmt.Errorf("%w: package %q", ErrPackageRepositoryRequired, ref.Name))
	}

	if ref.Version == "" {
		problems = append(problems, fmt.Errorf("%w: package %q", ErrPackageVersionRequired, ref.Name))

		return problems
	}

	_, err := semver.NewVersion(ref.Version)
	if err != nil {
		problems = append(
			problems,
			fmt.Errorf("%w: package %q has version %q", ErrPackageVersionInvalid, ref.Name, ref.Version),
		)
	}

	return problems
}
