// Package cli provides the interactive admin console.
//
// It wires configuration, the local session store, the authenticated HTTP
// client and the services behind a small REPL. On start the console tries to
// restore the previous session; if the backend can no longer refresh it, the
// client redirects the console's Router to the login screen and the user is
// told so.
//
// Key features:
//   - Login with an optional one-time code step, logout, whoami
//   - List / show / create / update / delete for every admin collection
//   - Per-collection stats, reports and the dashboard overview
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Router, and runREPL for details.
package cli
