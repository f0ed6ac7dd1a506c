package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"flowgate-hq/bpmnlint/pkg/history"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/history.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements history.Storage using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens the database, applies the schema, and enables
// WAL mode if configured.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "history.storage.sqlite")

	db, err := sql.Open("sqlite3", config.Path)
	if err != nil {
		return nil, history.NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite history storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize sets up the schema and the configured pragmas.
func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return history.NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return history.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return history.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return history.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return history.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return history.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// Store persists a history record.
func (s *SQLiteStorage) Store(ctx context.Context, record *history.Record) error {
	findings, err := json.Marshal(record.Findings)
	if err != nil {
		return history.NewStorageError("sqlite", "marshal_findings", err)
	}

	query := `
		INSERT INTO runs (
			id, diagram_id,
			source, path,
			valid, error_count, warning_count, findings,
			duration_ms, validated_at, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var pathVal interface{}
	if record.Path != "" {
		pathVal = record.Path
	}

	_, err = s.db.ExecContext(ctx, query,
		record.ID, record.DiagramID,
		record.Source, pathVal,
		record.Valid, record.ErrorCount, record.WarningCount, string(findings),
		record.Duration.Milliseconds(), record.ValidatedAt, record.RecordedAt,
	)
	if err != nil {
		return history.NewStorageError("sqlite", "store", err)
	}

	return nil
}

// Query retrieves records matching the query filters.
func (s *SQLiteStorage) Query(ctx context.Context, query *history.Query) ([]*history.Record, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT id, diagram_id, source, path, valid, error_count, warning_count, findings, duration_ms, validated_at, recorded_at FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}
	sqlQuery += orderClause(query)
	sqlQuery += limitClause(query)

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, history.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*history.Record{}
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, history.NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, history.NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of records matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *history.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, history.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Delete removes records matching the query filters.
func (s *SQLiteStorage) Delete(ctx context.Context, query *history.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "DELETE FROM runs"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, history.NewStorageError("sqlite", "delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, history.NewStorageError("sqlite", "delete", err)
	}
	return count, nil
}

// Ping verifies the database is reachable.
func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return history.NewStorageError("sqlite", "ping", err)
	}
	return nil
}

// Close releases the database connection.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return history.NewStorageError("sqlite", "close", err)
	}
	s.logger.Info("SQLite history storage closed")
	return nil
}

// buildWhereClause builds a SQL WHERE clause from query filters.
// Returns the clause without the WHERE keyword and the bound arguments.
func buildWhereClause(query *history.Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if query.StartTime != nil {
		conditions = append(conditions, "validated_at >= ?")
		args = append(args, *query.StartTime)
	}
	if query.EndTime != nil {
		conditions = append(conditions, "validated_at <= ?")
		args = append(args, *query.EndTime)
	}
	if query.DiagramID != "" {
		conditions = append(conditions, "diagram_id = ?")
		args = append(args, query.DiagramID)
	}
	if query.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, query.Source)
	}

	switch query.Status {
	case "valid":
		conditions = append(conditions, "valid = 1")
	case "invalid":
		conditions = append(conditions, "valid = 0")
	}

	whereClause := ""
	for i, condition := range conditions {
		if i > 0 {
			whereClause += " AND "
		}
		whereClause += condition
	}
	return whereClause, args
}

// sortColumns maps query sort keys to schema columns. Anything not in
// this map falls back to validated_at, which also keeps user input out
// of the ORDER BY clause.
var sortColumns = map[string]string{
	"validated_at": "validated_at",
	"errors":       "error_count",
	"warnings":     "warning_count",
}

func orderClause(query *history.Query) string {
	column, ok := sortColumns[query.SortBy]
	if !ok {
		column = "validated_at"
	}
	order := "DESC"
	if query.SortOrder == "asc" {
		order = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, order)
}

func limitClause(query *history.Query) string {
	limit := 100
	if query.Limit > 0 {
		limit = query.Limit
	}
	clause := fmt.Sprintf(" LIMIT %d", limit)
	if query.Offset > 0 {
		clause += fmt.Sprintf(" OFFSET %d", query.Offset)
	}
	return clause
}

// scanRow scans a database row into a Record.
func scanRow(rows *sql.Rows) (*history.Record, error) {
	var record history.Record
	var findings string
	var pathVal sql.NullString
	var durationMs int64

	err := rows.Scan(
		&record.ID, &record.DiagramID,
		&record.Source, &pathVal,
		&record.Valid, &record.ErrorCount, &record.WarningCount, &findings,
		&durationMs, &record.ValidatedAt, &record.RecordedAt,
	)
	if err != nil {
		return nil, err
	}

	if pathVal.Valid {
		record.Path = pathVal.String
	}
	if findings != "" {
		if err := json.Unmarshal([]byte(findings), &record.Findings); err != nil {
			return nil, err
		}
	}
	record.Duration = time.Duration(durationMs) * time.Millisecond

	return &record, nil
}
