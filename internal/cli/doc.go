// Package cli is the interactive front end: a line-oriented REPL over the
// record, event and marker services. Every command re-prints the affected
// collection once its operation has settled.
package cli
