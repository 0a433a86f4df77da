// Package seen persists the exclusion set: movie ids the user has already
// watched or rejected, which discovery must never suggest again.
//
// The Store is backed by SQLite. The id column is the primary key, so the set
// can never hold duplicates; adding an id twice is a no-op. Writers take a
// cross-process file lock next to the database so concurrent CLI invocations
// and the API server serialize their mutations, and SQLITE_BUSY is retried
// with bounded backoff. Reads take no lock.
//
// Schema changes bump schemaVersion in schema.go; users clear the database
// by deleting seen.db to adopt the new schema.
package seen
