// Package clusterprovisioner groups cluster provisioning implementations.
//
// Provisioners configure and manage local Kubernetes clusters while
// delegating container engine checks to pkg/svc/provider. The kind
// subpackage provisions clusters through the kind SDK.
package clusterprovisioner
