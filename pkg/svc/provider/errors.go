package provider

import "errors"

// Error definitions for container engine checks.
var (
	// ErrMissingTool is returned when a required external tool is not on PATH.
	ErrMissingTool = errors.New("required tool not found on PATH")

	// ErrEngineUnresponsive is returned when the container engine does not
	// answer a ping.
	ErrEngineUnresponsive = errors.New("container engine is not responding")
)
