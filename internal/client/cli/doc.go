// Package cli provides the interactive bloodlink command-line client.
//
// It wires configuration, the local sqlite database, the session store, the
// role router, the API client and the services into a REPL. Every command
// maps to a router view; a command whose view is not reachable for the
// current role is refused and the user is pointed at the matching login.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
