// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, payload string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldCwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })
}

// TestLoad verifies a valid file is loaded, and that invalid JSON, unknown
// framing, and missing files are reported as errors.
func TestLoad(t *testing.T) {
	dir := t.TempDir()

	valid := writeConfig(t, dir, "valid.json", `{"debug": true, "framing": "ndjson", "mcpInitTimeout": 3}`)
	cfg, err := Load(valid)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if !cfg.Debug {
		t.Fatalf("expected debug to be true")
	}
	if cfg.FramingMode() != FramingNDJSON {
		t.Fatalf("expected ndjson framing, got %s", cfg.FramingMode())
	}
	if cfg.MCPInitTimeoutDuration() != 3*time.Second {
		t.Fatalf("expected 3s init timeout, got %v", cfg.MCPInitTimeoutDuration())
	}
	if cfg.ConfigPath != valid {
		t.Fatalf("expected ConfigPath %q, got %q", valid, cfg.ConfigPath)
	}

	invalidJSON := writeConfig(t, dir, "invalid.json", `{ "debug": `)
	if _, err := Load(invalidJSON); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}

	badFraming := writeConfig(t, dir, "framing.json", `{ "framing": "smoke-signals" }`)
	if _, err := Load(badFraming); err == nil || !strings.Contains(err.Error(), "invalid framing") {
		t.Fatalf("Load() with unknown framing should have failed, got %v", err)
	}

	if _, err := Load(filepath.Join(dir, "nonexistent.json")); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("Load() with nonexistent file should report ErrConfigNotFound, got %v", err)
	}
}

func TestLoadDefaultAndLegacyPaths(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if _, err := Load(""); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected missing config error, got %v", err)
	}

	writeConfig(t, dir, legacyConfigPath, `{"serverName": "legacy"}`)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load legacy error: %v", err)
	}
	if cfg.ServerDisplayName() != "legacy" || cfg.ConfigPath != legacyConfigPath {
		t.Fatalf("expected legacy config, got %+v", cfg)
	}

	writeConfig(t, dir, DefaultConfigPath, `{"serverName": "primary"}`)
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load default error: %v", err)
	}
	if cfg.ServerDisplayName() != "primary" {
		t.Fatalf("expected default path to win, got %q", cfg.ServerDisplayName())
	}
}

func TestDefaults(t *testing.T) {
	var cfg Config
	if cfg.LogFilePath() != "timetool.log" {
		t.Fatalf("unexpected default log file %q", cfg.LogFilePath())
	}
	if cfg.FramingMode() != FramingAuto {
		t.Fatalf("unexpected default framing %q", cfg.FramingMode())
	}
	if cfg.ServerDisplayName() != "timetool-mcp" {
		t.Fatalf("unexpected default server name %q", cfg.ServerDisplayName())
	}
	if cfg.MCPInitTimeoutDuration() != 10*time.Second {
		t.Fatalf("unexpected default init timeout %v", cfg.MCPInitTimeoutDuration())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero config should validate: %v", err)
	}

	bin := cfg.MCPBinaryPath()
	if runtime.GOOS == "linux" && bin != "dist/timetool-mcp_linux_amd64_v1/timetool-mcp" {
		t.Fatalf("unexpected linux binary path %q", bin)
	}
	cfg.MCPBinary = " /opt/timetool-mcp "
	if cfg.MCPBinaryPath() != "/opt/timetool-mcp" {
		t.Fatalf("expected trimmed override, got %q", cfg.MCPBinaryPath())
	}

	cfg.MCPInitTimeout = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("negative timeout should not validate")
	}
}

func TestShowConfig(t *testing.T) {
	var buf bytes.Buffer
	ShowConfig(&buf, "", nil, false)
	out := buf.String()
	if !strings.Contains(out, "No config file loaded") {
		t.Fatalf("expected defaults notice, got: %s", out)
	}
	if !strings.Contains(out, "Framing:          auto") {
		t.Fatalf("expected framing line, got: %s", out)
	}

	buf.Reset()
	ShowConfig(&buf, "config/config.json", &Config{ServerName: "clock", Framing: "ndjson"}, true)
	out = buf.String()
	if !strings.Contains(out, "Config file: config/config.json") {
		t.Fatalf("expected config file line, got: %s", out)
	}
	if !strings.Contains(out, "Server Name:      clock") {
		t.Fatalf("expected server name, got: %s", out)
	}
	if !strings.Contains(out, "ServerName") {
		t.Fatalf("expected verbose dump of the struct, got: %s", out)
	}
}
