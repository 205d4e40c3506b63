// Package cli provides the command-line layer of kindplane.
//
// This package is organized into subpackages:
//
//   - cli/cmd: Root, up, and down command definitions with flag binding
//   - cli/ui/confirm: Interactive confirmation prompts
//   - cli/ui/errorhandler: Execution error capture and usage classification
package cli
