// Package roulette composes discovery, detail resolution and the seen list
// into the user-level operations exposed by the CLI and HTTP API: suggest a
// movie, show one, commit it as seen, forget it, and reset the list.
//
// Session owns no global state. Open wires the production collaborators from
// configuration; New accepts pre-built ones so tests can substitute fakes.
package roulette
