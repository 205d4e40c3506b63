// Package provisioner provides cluster provisioning services.
//
// The cluster subpackage manages the lifecycle of the local kind cluster
// that hosts the Crossplane control plane, including create, delete, and
// existence checks.
package provisioner
