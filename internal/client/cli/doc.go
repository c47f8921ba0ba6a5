// Package cli provides the interactive movie catalog client.
//
// It wires configuration, the local session database, the remote collection
// client and the application services into a read-eval-print loop. Anonymous
// users can browse, search and filter the catalog; signed-in users keep a
// list of favorites; administrators also manage users and movies.
//
// The REPL is started with App.Run, which blocks until the user exits or
// input ends.
package cli
