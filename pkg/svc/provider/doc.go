// Package provider verifies the container engine backing the cluster
// provisioner is present and responsive before any orchestration runs.
//
// The bootstrap flows refuse to start when the docker binary is missing from
// PATH or the engine daemon does not answer a ping, so failures surface as a
// clear preflight error instead of a cryptic provisioning failure minutes in.
package provider
