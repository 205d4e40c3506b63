// Package apis provides API type definitions for kindplane resources.
//
// This package contains versioned API types following Kubernetes API
// conventions:
//
//   - bootstrap: The Bootstrap run configuration assembled from flags,
//     environment variables, and defaults
package apis
