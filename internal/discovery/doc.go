// Package discovery finds the most popular catalog movie matching optional
// year and genre filters that the user has not already seen.
//
// The engine walks discover pages in popularity order, checking each result
// against the exclusion set, and stops at the first movie that is not
// excluded. Pages are fetched strictly one after another and only when the
// previous page produced no candidate; the walk ends at the catalog's
// reported total page count or the configured page bound.
//
// Start runs the same search on a goroutine and returns a Search handle so
// interactive callers can wait, poll or cancel without blocking.
package discovery
