package config

import "time"

// Config is the root configuration structure for bpmnlint.
// It contains all configuration sections for linting behavior, the HTTP
// server, validation history, the diagram registry, diagram sources, and
// telemetry settings.
type Config struct {
	// Lint contains validation behavior configuration including strict
	// mode, disabled rules, and output format.
	Lint LintConfig `yaml:"lint"`

	// Server contains HTTP server configuration including listen address,
	// timeouts, and TLS settings.
	Server ServerConfig `yaml:"server"`

	// History contains configuration for validation history storage
	// including backend selection and retention.
	History HistoryConfig `yaml:"history"`

	// Registry contains configuration for the tracked diagram registry.
	Registry RegistryConfig `yaml:"registry"`

	// Source contains configuration for where diagrams are loaded from:
	// local paths or a git repository, optionally watched for changes.
	Source SourceConfig `yaml:"source"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LintConfig contains configuration for the validation engine.
type LintConfig struct {
	// Strict treats warnings as errors for the exit code and the report
	// verdict surfaced by the CLI.
	// Default: false
	Strict bool `yaml:"strict"`

	// Format selects the report output format: "text" or "json".
	// Default: "text"
	Format string `yaml:"format"`

	// DisabledRules lists rule group names to skip during validation
	// (e.g., "reachability", "swimlanes").
	// Default: none
	DisabledRules []string `yaml:"disabled_rules"`

	// MaxFileSize bounds the size of diagram files read from disk, in bytes.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`
}

// ServerConfig contains configuration for the validation HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port for the server to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. A zero or negative value means no timeout.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. A zero or negative value means no timeout.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled. If IdleTimeout is zero, ReadTimeout is used.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing the request header.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// MaxBodyBytes bounds the size of request bodies on the validation
	// endpoint.
	// Default: 10485760 (10MB)
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// RelintSchedule is a cron expression for periodic re-validation of
	// registered diagrams. Empty disables scheduled re-validation.
	// Default: "" (disabled)
	RelintSchedule string `yaml:"relint_schedule"`

	// TLS contains TLS settings for the server.
	TLS TLSConfig `yaml:"tls"`
}

// TLSConfig contains TLS settings.
type TLSConfig struct {
	// Enabled controls whether the server uses TLS.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// CertFile is the path to the PEM-encoded certificate.
	// Required when TLS is enabled.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the PEM-encoded private key.
	// Required when TLS is enabled.
	KeyFile string `yaml:"key_file"`
}

// HistoryConfig contains configuration for validation history storage.
type HistoryConfig struct {
	// Enabled controls whether validation runs are recorded.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend: "memory" or "sqlite".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains settings for the sqlite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// RetentionDays is how long validation records are kept before pruning.
	// Zero disables pruning.
	// Default: 90
	RetentionDays int `yaml:"retention_days"`
}

// SQLiteConfig contains settings for a sqlite database file.
type SQLiteConfig struct {
	// Path is the database file location.
	// Default: "data/history.db"
	Path string `yaml:"path"`

	// MaxOpenConns limits concurrently open connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns limits idle pooled connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables write-ahead logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long queries wait on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RegistryConfig contains configuration for the tracked diagram registry.
type RegistryConfig struct {
	// Enabled controls whether diagrams are registered for re-validation.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend: "memory" or "sqlite".
	// Default: "memory"
	Backend string `yaml:"backend"`

	// Path is the database file location for the sqlite backend.
	// Default: "data/registry.db"
	Path string `yaml:"path"`
}

// SourceConfig contains configuration for diagram sources.
type SourceConfig struct {
	// Mode selects where diagrams are loaded from: "file" or "git".
	// Default: "file"
	Mode string `yaml:"mode"`

	// Paths lists files or directories scanned for diagrams in file mode.
	// Default: ["."]
	Paths []string `yaml:"paths"`

	// Watch re-validates diagrams when their files change.
	// Default: false
	Watch bool `yaml:"watch"`

	// DebounceInterval coalesces rapid file change bursts into a single
	// re-validation.
	// Default: 500ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`

	// Git contains settings for the git source mode.
	Git GitSourceConfig `yaml:"git"`
}

// GitSourceConfig contains settings for loading diagrams from a git
// repository.
type GitSourceConfig struct {
	// Repo is the clone URL of the repository.
	// Required in git mode.
	Repo string `yaml:"repo"`

	// Branch is the branch to check out.
	// Default: "main"
	Branch string `yaml:"branch"`

	// Path is the directory inside the repository holding diagrams.
	// Default: "."
	Path string `yaml:"path"`

	// PollInterval is how often the repository is fetched for updates.
	// Zero disables polling.
	// Default: 5m
	PollInterval time.Duration `yaml:"poll_interval"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains OpenTelemetry tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", or "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path the metrics endpoint is served on.
	// Default: "/metrics"
	Path string `yaml:"path"`
}

// TracingConfig contains OpenTelemetry tracing configuration.
type TracingConfig struct {
	// Enabled controls whether traces are exported.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector endpoint (host:port).
	Endpoint string `yaml:"endpoint"`

	// SampleRatio is the fraction of traces sampled, between 0 and 1.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Insecure disables transport security towards the collector.
	// Default: true (local collectors)
	Insecure bool `yaml:"insecure"`
}
