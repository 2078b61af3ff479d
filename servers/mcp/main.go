// servers/mcp/main.go
// MCP server over stdio (JSON-RPC 2.0, Content-Length or ndjson framing).
// Tools: get_time_utc, parse_time, time_offset
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/timetool/internal/appconfig"
	"github.com/mwiater/timetool/internal/logging"
	"github.com/mwiater/timetool/internal/mcpserver"
)

var (
	configPath string
	framing    string
	debug      bool
)

// Seams for tests.
var (
	loadConfig   = appconfig.Load
	initLogging  = logging.Init
	closeLogging = logging.Close

	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

func init() {
	flag.StringVar(&configPath, "config", "", "path to the config file")
	flag.StringVar(&framing, "framing", "", "stdio framing: auto, content-length or ndjson")
	flag.BoolVar(&debug, "debug", false, "log request and response payloads")
}

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("MCP server stopped: %v", err)
		_ = closeLogging()
		stop()
		os.Exit(1)
	}
}

// run loads the config, sets up logging, and serves until stdin closes. Only
// an absent default config falls back to defaults; a config named with
// -config must load, and a default config that exists must be valid.
func run(ctx context.Context) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		if configPath != "" || !errors.Is(err, appconfig.ErrConfigNotFound) {
			return err
		}
		cfg = appconfig.Config{}
	}
	if framing != "" {
		cfg.Framing = framing
	}
	if debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := initLogging(cfg.LogFilePath()); err != nil {
		return err
	}
	defer closeLogging()
	logging.SetDebug(cfg.Debug)

	err = mcpserver.New(cfg).Serve(ctx, stdin, stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
