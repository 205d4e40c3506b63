// Package utils provides utility packages for common operations.
//
// This package contains subpackages with utility functions used across
// the kindplane codebase:
//
//   - envvar: ${VAR_NAME} placeholder expansion in configuration strings
//   - labels: Kubernetes label map helpers
//   - notify: Formatted message display with symbols and colors
//   - ops: Named operation execution with explicit failure policies
//
// These utilities are designed to be simple, focused, and reusable across
// different parts of the application.
package utils
