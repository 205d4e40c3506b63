// Package k8s provides Kubernetes client configuration and general-purpose utilities.
//
// This package offers reusable utilities for working with Kubernetes clusters,
// including REST client configuration, kubeconfig path resolution, namespace
// management, and pod failure diagnostics.
//
// For resource readiness polling, see the [readiness] sub-package.
//
// Key features:
//   - REST config building from kubeconfig files (BuildRESTConfig)
//   - Clientset creation (NewClientset)
//   - Kubeconfig path resolution (DefaultKubeconfigPath, ExpandHomePath)
//   - Namespace management (EnsureNamespace)
//   - Pod failure diagnostics (DiagnosePodFailures)
package k8s
