package registry

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// SQLiteBackend implements Backend using SQLite for persistence, so the
// registry survives server restarts. WAL mode keeps readers from
// blocking the single writer; a background loop checkpoints the WAL.
type SQLiteBackend struct {
	db        *sql.DB
	dbPath    string
	done      chan struct{}
	mu        sync.RWMutex
	closeOnce sync.Once

	upsertStmt *sql.Stmt
	getStmt    *sql.Stmt
	listStmt   *sql.Stmt
	removeStmt *sql.Stmt
	countStmt  *sql.Stmt
}

const checkpointInterval = 5 * time.Minute

// NewSQLiteBackend opens (or creates) the registry database at dbPath.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	backend := &SQLiteBackend{
		db:     db,
		dbPath: dbPath,
		done:   make(chan struct{}),
	}

	if err := backend.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := backend.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	go backend.checkpointLoop()

	return backend, nil
}

func (s *SQLiteBackend) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS diagrams (
		diagram_id TEXT PRIMARY KEY,
		name TEXT,
		source TEXT NOT NULL,
		path TEXT,
		processes INTEGER NOT NULL,
		elements INTEGER NOT NULL,
		last_valid BOOLEAN NOT NULL,
		last_error_count INTEGER NOT NULL,
		last_warning_count INTEGER NOT NULL,
		last_validated_at INTEGER NOT NULL,
		first_seen INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_diagrams_source ON diagrams(source);
	CREATE INDEX IF NOT EXISTS idx_diagrams_last_valid ON diagrams(last_valid);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteBackend) prepareStatements() error {
	var err error

	s.upsertStmt, err = s.db.Prepare(`
		INSERT INTO diagrams (diagram_id, name, source, path, processes, elements,
			last_valid, last_error_count, last_warning_count, last_validated_at, first_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (diagram_id) DO UPDATE SET
			name = excluded.name,
			source = excluded.source,
			path = excluded.path,
			processes = excluded.processes,
			elements = excluded.elements,
			last_valid = excluded.last_valid,
			last_error_count = excluded.last_error_count,
			last_warning_count = excluded.last_warning_count,
			last_validated_at = excluded.last_validated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert statement: %w", err)
	}

	s.getStmt, err = s.db.Prepare(`
		SELECT diagram_id, name, source, path, processes, elements,
			last_valid, last_error_count, last_warning_count, last_validated_at, first_seen
		FROM diagrams WHERE diagram_id = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare get statement: %w", err)
	}

	s.listStmt, err = s.db.Prepare(`
		SELECT diagram_id, name, source, path, processes, elements,
			last_valid, last_error_count, last_warning_count, last_validated_at, first_seen
		FROM diagrams ORDER BY diagram_id
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare list statement: %w", err)
	}

	s.removeStmt, err = s.db.Prepare(`DELETE FROM diagrams WHERE diagram_id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare remove statement: %w", err)
	}

	s.countStmt, err = s.db.Prepare(`SELECT COUNT(*) FROM diagrams`)
	if err != nil {
		return fmt.Errorf("failed to prepare count statement: %w", err)
	}

	return nil
}

// Upsert registers a diagram or updates its entry.
func (s *SQLiteBackend) Upsert(ctx context.Context, entry *Entry) error {
	if entry == nil || entry.DiagramID == "" {
		return fmt.Errorf("entry must have a diagram id")
	}

	firstSeen := entry.FirstSeen
	if firstSeen.IsZero() {
		firstSeen = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.upsertStmt.ExecContext(ctx,
		entry.DiagramID, entry.Name, entry.Source, entry.Path,
		entry.Processes, entry.Elements,
		entry.LastValid, entry.LastErrorCount, entry.LastWarningCount,
		entry.LastValidatedAt.Unix(), firstSeen.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert entry: %w", err)
	}
	return nil
}

// Get returns the entry for a diagram id, or nil if not tracked.
func (s *SQLiteBackend) Get(ctx context.Context, diagramID string) (*Entry, error) {
	if diagramID == "" {
		return nil, fmt.Errorf("diagram id cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, err := scanEntry(s.getStmt.QueryRowContext(ctx, diagramID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

// List returns all entries ordered by diagram id.
func (s *SQLiteBackend) List(ctx context.Context) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.listStmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

// Remove drops a diagram from the registry.
func (s *SQLiteBackend) Remove(ctx context.Context, diagramID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.removeStmt.ExecContext(ctx, diagramID); err != nil {
		return fmt.Errorf("failed to remove entry: %w", err)
	}
	return nil
}

// Count returns the number of tracked diagrams.
func (s *SQLiteBackend) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	if err := s.countStmt.QueryRowContext(ctx).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// Ping verifies the database is reachable.
func (s *SQLiteBackend) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases resources. Close is idempotent.
func (s *SQLiteBackend) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		close(s.done)

		for _, stmt := range []*sql.Stmt{s.upsertStmt, s.getStmt, s.listStmt, s.removeStmt, s.countStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}

		if s.db != nil {
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = s.db.Close()
		}
	})

	return closeErr
}

// checkpointLoop runs periodic WAL checkpoints.
func (s *SQLiteBackend) checkpointLoop() {
	ticker := time.NewTicker(checkpointInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(PASSIVE)")
		case <-s.done:
			return
		}
	}
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var entry Entry
	var name, path sql.NullString
	var lastValidatedAt, firstSeen int64

	err := row.Scan(
		&entry.DiagramID, &name, &entry.Source, &path,
		&entry.Processes, &entry.Elements,
		&entry.LastValid, &entry.LastErrorCount, &entry.LastWarningCount,
		&lastValidatedAt, &firstSeen,
	)
	if err != nil {
		return nil, err
	}

	entry.Name = name.String
	entry.Path = path.String
	entry.LastValidatedAt = time.Unix(lastValidatedAt, 0).UTC()
	entry.FirstSeen = time.Unix(firstSeen, 0).UTC()

	return &entry, nil
}
