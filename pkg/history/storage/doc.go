// Package storage provides backends for the validation history store.
//
// Two implementations of history.Storage are available:
//
//   - SQLiteStorage: durable storage in a single SQLite file with WAL
//     mode for concurrent readers. The default for the server.
//   - MemoryStorage: a map guarded by a mutex, used by tests and by
//     deployments that opt out of persistence.
//
// Both backends apply the same filter, sort, and pagination semantics,
// so the history CLI and server behave identically against either.
package storage
