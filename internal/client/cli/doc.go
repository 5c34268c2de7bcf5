// Package cli provides the interactive authkeeper command-line client.
//
// It wires configuration, the HTTP API client and a persisted session token
// into a small REPL. Typical flow: register or login, open the dashboard,
// then logout.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
