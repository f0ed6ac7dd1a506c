package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, "lint:\n  strict: true\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !cfg.Lint.Strict {
		t.Error("explicit strict=true lost")
	}
	if cfg.Lint.Format != DefaultLintFormat {
		t.Errorf("lint.format = %q, want default %q", cfg.Lint.Format, DefaultLintFormat)
	}
	if cfg.Server.ListenAddress != DefaultListenAddress {
		t.Errorf("server.listen_address = %q, want default %q", cfg.Server.ListenAddress, DefaultListenAddress)
	}
	if cfg.Server.ReadTimeout != DefaultReadTimeout {
		t.Errorf("server.read_timeout = %v, want default %v", cfg.Server.ReadTimeout, DefaultReadTimeout)
	}
	if cfg.History.Backend != DefaultHistoryBackend {
		t.Errorf("history.backend = %q, want default %q", cfg.History.Backend, DefaultHistoryBackend)
	}
	if !cfg.History.Enabled {
		t.Error("history.enabled should default to true")
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("telemetry.metrics.enabled should default to true")
	}
	if cfg.Telemetry.Tracing.SampleRatio != DefaultTracingSampleRatio {
		t.Errorf("tracing.sample_ratio = %v, want %v", cfg.Telemetry.Tracing.SampleRatio, DefaultTracingSampleRatio)
	}
}

func TestLoadConfigExplicitFalseSurvives(t *testing.T) {
	path := writeConfigFile(t, "history:\n  enabled: false\ntelemetry:\n  metrics:\n    enabled: false\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.History.Enabled {
		t.Error("explicit history.enabled=false was overridden by defaults")
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("explicit metrics.enabled=false was overridden by defaults")
	}
}

func TestLoadConfigFileValues(t *testing.T) {
	path := writeConfigFile(t, `
lint:
  format: json
  disabled_rules: [reachability, swimlanes]
server:
  listen_address: "0.0.0.0:9090"
  read_timeout: 10s
source:
  mode: git
  git:
    repo: "https://example.com/diagrams.git"
    branch: release
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Lint.Format != "json" {
		t.Errorf("lint.format = %q", cfg.Lint.Format)
	}
	if len(cfg.Lint.DisabledRules) != 2 || cfg.Lint.DisabledRules[0] != "reachability" {
		t.Errorf("lint.disabled_rules = %v", cfg.Lint.DisabledRules)
	}
	if cfg.Server.ListenAddress != "0.0.0.0:9090" {
		t.Errorf("server.listen_address = %q", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("server.read_timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Source.Mode != "git" || cfg.Source.Git.Branch != "release" {
		t.Errorf("source = %+v", cfg.Source)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read configuration file") {
		t.Errorf("err = %v", err)
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "lint: [not a mapping")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse configuration file") {
		t.Errorf("err = %v", err)
	}
}

func TestLoadConfigInvalidValues(t *testing.T) {
	path := writeConfigFile(t, "lint:\n  format: xml\n")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "configuration validation failed") {
		t.Errorf("err = %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BPMNLINT_LINT_STRICT", "true")
	t.Setenv("BPMNLINT_LINT_DISABLED_RULES", "gateways, data")
	t.Setenv("BPMNLINT_SERVER_LISTEN_ADDRESS", "127.0.0.1:7171")
	t.Setenv("BPMNLINT_SERVER_READ_TIMEOUT", "90s")
	t.Setenv("BPMNLINT_HISTORY_BACKEND", "memory")
	t.Setenv("BPMNLINT_TELEMETRY_LOGGING_LEVEL", "debug")

	path := writeConfigFile(t, "server:\n  listen_address: \"127.0.0.1:8080\"\n")
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides: %v", err)
	}

	if !cfg.Lint.Strict {
		t.Error("BPMNLINT_LINT_STRICT not applied")
	}
	if len(cfg.Lint.DisabledRules) != 2 || cfg.Lint.DisabledRules[1] != "data" {
		t.Errorf("disabled rules = %v", cfg.Lint.DisabledRules)
	}
	if cfg.Server.ListenAddress != "127.0.0.1:7171" {
		t.Error("env override must take precedence over the file")
	}
	if cfg.Server.ReadTimeout != 90*time.Second {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.History.Backend != "memory" {
		t.Errorf("history backend = %q", cfg.History.Backend)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("logging level = %q", cfg.Telemetry.Logging.Level)
	}
}

func TestEnvOverridesInvalidValuesIgnored(t *testing.T) {
	t.Setenv("BPMNLINT_SERVER_READ_TIMEOUT", "not-a-duration")
	t.Setenv("BPMNLINT_LINT_STRICT", "not-a-bool")

	path := writeConfigFile(t, "")
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides: %v", err)
	}
	if cfg.Server.ReadTimeout != DefaultReadTimeout {
		t.Errorf("unparseable duration should keep the default, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Lint.Strict {
		t.Error("unparseable bool should keep the default")
	}
}

func TestEnvOverridesRevalidated(t *testing.T) {
	t.Setenv("BPMNLINT_LINT_FORMAT", "xml")

	path := writeConfigFile(t, "")
	_, err := LoadConfigWithEnvOverrides(path)
	if err == nil || !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("err = %v", err)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, b ,,c ")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("splitList = %v", got)
	}
}
