// Package installer groups the component installers that populate a cluster.
//
// The crossplane subpackage manages the control-plane Helm release, and the
// xpkg subpackage applies Crossplane packages and waits for them to report
// healthy.
package installer
