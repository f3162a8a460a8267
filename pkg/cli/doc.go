// Package cli implements the command-line interface for the hostsnap tool.
//
// # Commands
//
// collect - capture a host data snapshot:
//
//	hostsnap collect [--hostname HOST] [--username USER] [--privkey PATH]
//	                 [--timeout DUR] [--outdir DIR] [--plan FILE] [--force]
//
// Runs the collection plan against the target host (local by default) and
// writes the snapshot tree plus one manifest per module under the output
// root.
//
// plan - print the effective collection plan:
//
//	hostsnap plan [--plan FILE] [--output FILE] [--format yaml|json|table]
//
// # Exit Codes
//
//	0  Success
//	1  Connection, plan, or collection failure
//	2  Interrupted
//
// # Environment Variables
//
//	LOG_LEVEL           Set logging verbosity (debug, info, warn, error)
//	HOSTSNAP_HOSTNAME   Default target host
//	HOSTSNAP_USERNAME   Default remote user
//	HOSTSNAP_PRIVKEY    Default private key path
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/hostsnap/hostsnap/pkg/cli.version=1.0.0'"
package cli
