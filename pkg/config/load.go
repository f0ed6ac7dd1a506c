package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. The configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Decode over a fully defaulted struct so booleans whose default is
	// true keep an explicit false from the file.
	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention BPMNLINT_SECTION_FIELD (e.g., BPMNLINT_SERVER_LISTEN_ADDRESS).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format BPMNLINT_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Lint overrides
	if val := os.Getenv("BPMNLINT_LINT_STRICT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Lint.Strict = b
		}
	}
	if val := os.Getenv("BPMNLINT_LINT_FORMAT"); val != "" {
		cfg.Lint.Format = val
	}
	if val := os.Getenv("BPMNLINT_LINT_DISABLED_RULES"); val != "" {
		cfg.Lint.DisabledRules = splitList(val)
	}
	if val := os.Getenv("BPMNLINT_LINT_MAX_FILE_SIZE"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Lint.MaxFileSize = i
		}
	}

	// Server overrides
	if val := os.Getenv("BPMNLINT_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("BPMNLINT_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("BPMNLINT_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("BPMNLINT_SERVER_IDLE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.IdleTimeout = d
		}
	}
	if val := os.Getenv("BPMNLINT_SERVER_RELINT_SCHEDULE"); val != "" {
		cfg.Server.RelintSchedule = val
	}
	if val := os.Getenv("BPMNLINT_SERVER_TLS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Server.TLS.Enabled = b
		}
	}
	if val := os.Getenv("BPMNLINT_SERVER_TLS_CERT_FILE"); val != "" {
		cfg.Server.TLS.CertFile = val
	}
	if val := os.Getenv("BPMNLINT_SERVER_TLS_KEY_FILE"); val != "" {
		cfg.Server.TLS.KeyFile = val
	}

	// History overrides
	if val := os.Getenv("BPMNLINT_HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv("BPMNLINT_HISTORY_BACKEND"); val != "" {
		cfg.History.Backend = val
	}
	if val := os.Getenv("BPMNLINT_HISTORY_SQLITE_PATH"); val != "" {
		cfg.History.SQLite.Path = val
	}
	if val := os.Getenv("BPMNLINT_HISTORY_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.History.RetentionDays = i
		}
	}

	// Registry overrides
	if val := os.Getenv("BPMNLINT_REGISTRY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Registry.Enabled = b
		}
	}
	if val := os.Getenv("BPMNLINT_REGISTRY_BACKEND"); val != "" {
		cfg.Registry.Backend = val
	}
	if val := os.Getenv("BPMNLINT_REGISTRY_PATH"); val != "" {
		cfg.Registry.Path = val
	}

	// Source overrides
	if val := os.Getenv("BPMNLINT_SOURCE_MODE"); val != "" {
		cfg.Source.Mode = val
	}
	if val := os.Getenv("BPMNLINT_SOURCE_PATHS"); val != "" {
		cfg.Source.Paths = splitList(val)
	}
	if val := os.Getenv("BPMNLINT_SOURCE_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Source.Watch = b
		}
	}
	if val := os.Getenv("BPMNLINT_SOURCE_GIT_REPO"); val != "" {
		cfg.Source.Git.Repo = val
	}
	if val := os.Getenv("BPMNLINT_SOURCE_GIT_BRANCH"); val != "" {
		cfg.Source.Git.Branch = val
	}
	if val := os.Getenv("BPMNLINT_SOURCE_GIT_PATH"); val != "" {
		cfg.Source.Git.Path = val
	}

	// Telemetry overrides
	if val := os.Getenv("BPMNLINT_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("BPMNLINT_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("BPMNLINT_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("BPMNLINT_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
	if val := os.Getenv("BPMNLINT_TELEMETRY_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("BPMNLINT_TELEMETRY_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := os.Getenv("BPMNLINT_TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}

// splitList parses a comma-separated environment value into a slice,
// trimming whitespace and dropping empty entries.
func splitList(val string) []string {
	var out []string
	for _, item := range strings.Split(val, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
