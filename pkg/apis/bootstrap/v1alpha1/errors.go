package v1alpha1

import "errors"

// ErrWaitDurationMalformed is returned when a duration string is not of the
// form "<integer><unit>".
var ErrWaitDurationMalformed = errors.New("wait duration is malformed")

// ErrWaitDurationUnit is returned when a duration string carries a unit other
// than minutes.
var ErrWaitDurationUnit = errors.New("wait duration unit is not supported (only minutes, e.g. \"10m\")")

// ErrClusterNameRequired is returned when the cluster name is empty.
var ErrClusterNameRequired = errors.New("cluster name is required")

// ErrClusterNameTooLong is returned when the cluster name exceeds the maximum length.
var ErrClusterNameTooLong = errors.New("cluster name is too long")

// ErrClusterNameInvalid is returned when the cluster name is not DNS-1123 compliant.
var ErrClusterNameInvalid = errors.New("cluster name is invalid")

// ErrNodeImageRequired is returned when the kind node image is empty.
var ErrNodeImageRequired = errors.New("node image is required")

// ErrKubeconfigRequired is returned when the kubeconfig path is empty.
var ErrKubeconfigRequired = errors.New("kubeconfig path is required")

// ErrCrossplaneVersionRequired is returned when the Crossplane chart version is empty.
var ErrCrossplaneVersionRequired = errors.New("crossplane version is required")

// ErrCrossplaneVersionInvalid is returned when the Crossplane chart version is
// not a semantic version.
var ErrCrossplaneVersionInvalid = errors.New("crossplane version is not a semantic version")

// ErrPackageNameRequired is returned when a package resource name is empty.
var ErrPackageNameRequired = errors.New("package name is required")

// ErrPackageRepositoryRequired is returned when a package OCI repository is empty.
var ErrPackageRepositoryRequired = errors.New("package repository is required")

// ErrPackageVersionRequired is returned when a package version is empty.
var ErrPackageVersionRequired = errors.New("package version is required")

// ErrPackageVersionInvalid is returned when a package version is not a
// semantic version.
var ErrPackageVersionInvalid = errors.New("package version is not a semantic version")

// ErrWaitTimeoutRequired is returned when the wait timeout is unset or zero.
var ErrWaitTimeoutRequired = errors.New("wait timeout must be a positive duration")
