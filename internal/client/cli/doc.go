// Package cli provides the interactive BlogIT terminal client.
//
// It wires configuration, the local key/value store, the REST client, the
// session manager and the background notification poller, then runs a REPL.
// On start the persisted session is restored in the background; gated
// commands wait while it is loading and send anonymous users to login.
//
// Commands:
//   - register / login / logout
//   - feed [page], post, delete <id>
//   - users, profile <username>, follow, followers, following
//   - notifications, open <n>
//   - quote
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
