// Package svc provides the service layer for kindplane.
//
// This package contains the business logic that coordinates between the CLI
// commands and the underlying clients.
//
// Subpackages:
//   - bootstrap: Up and Down flow orchestration
//   - installer: Crossplane control-plane and package installers
//   - provider: Container engine availability checks
//   - provisioner: Kind cluster lifecycle management
package svc
