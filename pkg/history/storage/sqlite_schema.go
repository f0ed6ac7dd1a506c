package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the history database schema.
const Schema = `
-- Validation run records
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    diagram_id TEXT NOT NULL,

    -- Origin
    source TEXT NOT NULL,
    path TEXT,

    -- Outcome
    valid BOOLEAN NOT NULL,
    error_count INTEGER NOT NULL,
    warning_count INTEGER NOT NULL,
    findings TEXT,

    -- Timing
    duration_ms INTEGER NOT NULL,
    validated_at TIMESTAMP NOT NULL,
    recorded_at TIMESTAMP NOT NULL
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_runs_validated_at ON runs(validated_at);
CREATE INDEX IF NOT EXISTS idx_runs_diagram_id ON runs(diagram_id);
CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);
CREATE INDEX IF NOT EXISTS idx_runs_valid ON runs(valid);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
