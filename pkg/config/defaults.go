package config

import "time"

// Default values for configuration fields.
const (
	// Lint defaults
	DefaultLintStrict      = false
	DefaultLintFormat      = "text"
	DefaultLintMaxFileSize = int64(10 * 1024 * 1024) // 10MB

	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB
	DefaultMaxBodyBytes    = int64(10 * 1024 * 1024)

	// History defaults
	DefaultHistoryEnabled       = true
	DefaultHistoryBackend       = "sqlite"
	DefaultHistorySQLitePath    = "data/history.db"
	DefaultSQLiteMaxOpenConns   = 10
	DefaultSQLiteMaxIdleConns   = 5
	DefaultSQLiteWALMode        = true
	DefaultSQLiteBusyTimeout    = 5 * time.Second
	DefaultHistoryRetentionDays = 90

	// Registry defaults
	DefaultRegistryEnabled = true
	DefaultRegistryBackend = "memory"
	DefaultRegistryPath    = "data/registry.db"

	// Source defaults
	DefaultSourceMode       = "file"
	DefaultSourceWatch      = false
	DefaultDebounceInterval = 500 * time.Millisecond
	DefaultGitBranch        = "main"
	DefaultGitPath          = "."
	DefaultGitPollInterval  = 5 * time.Minute

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "json"
	DefaultMetricsEnabled     = true
	DefaultMetricsPath        = "/metrics"
	DefaultTracingEnabled     = false
	DefaultTracingSampleRatio = 1.0
	DefaultTracingInsecure    = true

	// Security defaults
	DefaultTLSEnabled = false
)

// ApplyDefaults fills zero-valued configuration fields with their defaults.
// Boolean fields whose default is true are seeded by NewDefaultConfig before
// the YAML decode, so an explicit "enabled: false" in the file survives.
func ApplyDefaults(cfg *Config) {
	if cfg.Lint.Format == "" {
		cfg.Lint.Format = DefaultLintFormat
	}
	if cfg.Lint.MaxFileSize == 0 {
		cfg.Lint.MaxFileSize = DefaultLintMaxFileSize
	}

	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}

	if cfg.History.Backend == "" {
		cfg.History.Backend = DefaultHistoryBackend
	}
	if cfg.History.SQLite.Path == "" {
		cfg.History.SQLite.Path = DefaultHistorySQLitePath
	}
	if cfg.History.SQLite.MaxOpenConns == 0 {
		cfg.History.SQLite.MaxOpenConns = DefaultSQLiteMaxOpenConns
	}
	if cfg.History.SQLite.MaxIdleConns == 0 {
		cfg.History.SQLite.MaxIdleConns = DefaultSQLiteMaxIdleConns
	}
	if cfg.History.SQLite.BusyTimeout == 0 {
		cfg.History.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}
	if cfg.History.RetentionDays == 0 {
		cfg.History.RetentionDays = DefaultHistoryRetentionDays
	}

	if cfg.Registry.Backend == "" {
		cfg.Registry.Backend = DefaultRegistryBackend
	}
	if cfg.Registry.Path == "" {
		cfg.Registry.Path = DefaultRegistryPath
	}

	if cfg.Source.Mode == "" {
		cfg.Source.Mode = DefaultSourceMode
	}
	if len(cfg.Source.Paths) == 0 {
		cfg.Source.Paths = []string{"."}
	}
	if cfg.Source.DebounceInterval == 0 {
		cfg.Source.DebounceInterval = DefaultDebounceInterval
	}
	if cfg.Source.Git.Branch == "" {
		cfg.Source.Git.Branch = DefaultGitBranch
	}
	if cfg.Source.Git.Path == "" {
		cfg.Source.Git.Path = DefaultGitPath
	}
	if cfg.Source.Git.PollInterval == 0 {
		cfg.Source.Git.PollInterval = DefaultGitPollInterval
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
}

// NewDefaultConfig returns a configuration with every field set to its
// default, including the boolean fields whose default is true. LoadConfig
// decodes YAML into this struct so that explicit "enabled: false" survives.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.History.Enabled = DefaultHistoryEnabled
	cfg.Registry.Enabled = DefaultRegistryEnabled
	cfg.History.SQLite.WALMode = DefaultSQLiteWALMode
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	cfg.Telemetry.Tracing.Insecure = DefaultTracingInsecure
	ApplyDefaults(cfg)
	return cfg
}
