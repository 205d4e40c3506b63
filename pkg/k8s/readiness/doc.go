// Package readiness provides Kubernetes resource readiness polling utilities.
//
// This package offers reusable utilities for waiting until Kubernetes resources
// become ready. It supports deployments, nodes, and the API server, and
// provides a generic polling mechanism that can be extended.
//
// Key features:
//   - Generic polling mechanism (PollForReadiness)
//   - Deployment rollout polling (WaitForDeploymentReady)
//   - Node readiness polling (WaitForNodeReady)
//   - API server readiness polling (WaitForAPIServerReady)
package readiness
