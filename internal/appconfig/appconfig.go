// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path checked when the default file is absent.
	legacyConfigPath = "config.json"
	// defaultMCPInitTimeout defines the fallback timeout used while initializing the MCP server.
	defaultMCPInitTimeout = 10 * time.Second
	// defaultServerName is the name reported in the initialize handshake.
	defaultServerName = "timetool-mcp"
	// defaultLogFile is used when the config omits logFile.
	defaultLogFile = "timetool.log"
)

// ErrConfigNotFound is returned by Load when no configuration file exists.
var ErrConfigNotFound = errors.New("no configuration file found")

// Framing selects how JSON-RPC messages are delimited on stdio.
type Framing string

const (
	// FramingAuto detects the framing from each incoming message.
	FramingAuto Framing = "auto"
	// FramingContentLength uses LSP-style "Content-Length" headers.
	FramingContentLength Framing = "content-length"
	// FramingNDJSON uses one JSON document per line.
	FramingNDJSON Framing = "ndjson"
)

// Config represents the top-level application configuration.
type Config struct {
	Debug          bool   `json:"debug"`
	JSONMode       bool   `json:"jsonMode"`
	LogFile        string `json:"logFile,omitempty"`
	Framing        string `json:"framing,omitempty"`
	ServerName     string `json:"serverName,omitempty"`
	MCPBinary      string `json:"mcpBinary,omitempty"`
	MCPInitTimeout int    `json:"mcpInitTimeout,omitempty"`
	ConfigPath     string `json:"-"`
}

// MCPInitTimeoutDuration returns the timeout duration for MCP initialization.
func (c Config) MCPInitTimeoutDuration() time.Duration {
	if c.MCPInitTimeout <= 0 {
		return defaultMCPInitTimeout
	}
	return time.Duration(c.MCPInitTimeout) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// FramingMode returns the configured framing, defaulting to auto-detection.
func (c Config) FramingMode() Framing {
	f := Framing(strings.ToLower(strings.TrimSpace(c.Framing)))
	if f == "" {
		return FramingAuto
	}
	return f
}

// ServerDisplayName returns the server name announced to MCP hosts.
func (c Config) ServerDisplayName() string {
	if name := strings.TrimSpace(c.ServerName); name != "" {
		return name
	}
	return defaultServerName
}

// MCPBinaryPath returns the resolved MCP server binary path, choosing a default based on the OS if not provided.
func (c Config) MCPBinaryPath() string {
	if b := strings.TrimSpace(c.MCPBinary); b != "" {
		return b
	}
	switch runtime.GOOS {
	case "windows":
		return "dist/timetool-mcp_windows_amd64_v1/timetool-mcp.exe"
	case "linux":
		return "dist/timetool-mcp_linux_amd64_v1/timetool-mcp"
	default:
		return "dist/timetool-mcp"
	}
}

// Validate reports configuration values that cannot be used.
func (c Config) Validate() error {
	switch c.FramingMode() {
	case FramingAuto, FramingContentLength, FramingNDJSON:
	default:
		return fmt.Errorf("invalid framing %q (want %s, %s or %s)", c.Framing, FramingAuto, FramingContentLength, FramingNDJSON)
	}
	if c.MCPInitTimeout < 0 {
		return errors.New("mcpInitTimeout must not be negative")
	}
	return nil
}

// Load reads the application configuration from the specified path, with fallback to a legacy path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		if err := config.Validate(); err != nil {
			return Config{}, fmt.Errorf("config %q: %w", path, err)
		}
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				if err := config.Validate(); err != nil {
					return Config{}, fmt.Errorf("config %q: %w", legacyConfigPath, err)
				}
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Config{}, fmt.Errorf("%w (searched %q and %q)", ErrConfigNotFound, DefaultConfigPath, legacyConfigPath)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Config{}, fmt.Errorf("%w at %q", ErrConfigNotFound, path)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
