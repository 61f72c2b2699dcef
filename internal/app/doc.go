// Package app wires application dependencies for the CLI and the wallet
// bridge daemon.
//
// It loads Config from YAML and the environment, builds the logger, the
// session store, the wallet provider and the high-level services, and
// exposes them via the Wire struct for commands to use.
package app
