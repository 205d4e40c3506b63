// Package client provides embedded tool clients.
//
// This package contains Go library wrappers for the tools kindplane drives
// directly, eliminating external binary dependencies:
//
//   - docker: container engine connectivity checks
//   - helm: Helm chart installation and repository management
//   - netretry: shared retry helpers for transient network errors
//
// By embedding these clients as Go libraries, kindplane only requires a
// running Docker engine as an external dependency.
package client
