// Package cli provides the docchat command line interface built on cobra.
//
// Commands talk to the core only through driving ports. The composition root
// (cmd/docchat) registers a Bootstrap function that builds those ports once
// the global flags have been parsed.
package cli
