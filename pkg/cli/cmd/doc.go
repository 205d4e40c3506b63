// Package cmd provides the command-line interface for kindplane.
//
// This package contains the root command and the two flows it delegates to:
//   - up: provision a kind cluster with Crossplane and its packages
//   - down: tear the Crossplane installation and optionally the cluster down
package cmd
