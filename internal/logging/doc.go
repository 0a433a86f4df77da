// Package logging assembles structured slog loggers used across roulette.
//
// It owns the console and JSON handlers, level and output plumbing, the
// standard field names, and context helpers that stamp a search correlation
// ID onto every line a discovery run emits. A no-op logger is provided for
// tests and for wiring code that cannot fail.
package logging
