// Package cli provides the interactive UserKeeper command-line client.
//
// Commands:
//   - signup <username> <app>[,<app>...]  create an account
//   - login <username>                    open a session
//   - passwd                              change the current password
//   - whoami                              show the session's identity
//   - addapp / delapp <name>              manage apps (admin only)
//   - logout                              forget the local session
//
// Passwords are always read from the terminal without echo. The REPL is
// started via App.Run(ctx), which blocks until the user exits.
package cli
