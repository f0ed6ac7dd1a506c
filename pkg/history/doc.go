// Package history records validation runs so past outcomes can be
// queried from the CLI and the server.
//
// A Recorder turns each validation report into an immutable Record
// (identified by a UUID) and writes it to a Storage backend on a
// background worker, so recording never blocks a validation request.
//
// Backends live in the storage subpackage: SQLite for durable history
// and an in-memory store for tests. The retention subpackage prunes old
// records on a cron schedule.
//
// Typical wiring:
//
//	store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{Path: "data/history.db"})
//	recorder := history.NewRecorder(store, nil)
//	defer recorder.Close()
//
//	recorder.Record(ctx, diagram.ID, "file", path, rep, elapsed)
package history
