package appconfig

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp"
)

// ShowConfig prints the current configuration summary. When verbose is set,
// the raw struct is dumped as well.
func ShowConfig(out io.Writer, file string, cfg *Config, verbose bool) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &Config{}
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:            %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:        %v\n", cfg.JSONMode)
	fmt.Fprintf(out, "  Log File:         %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Framing:          %s\n", cfg.FramingMode())
	fmt.Fprintf(out, "  Server Name:      %s\n", cfg.ServerDisplayName())
	fmt.Fprintf(out, "  MCP Binary:       %s\n", cfg.MCPBinaryPath())
	fmt.Fprintf(out, "  MCP Init Timeout: %s\n", cfg.MCPInitTimeoutDuration())

	if verbose {
		coloring := pp.ColoringEnabled
		pp.ColoringEnabled = false
		defer func() { pp.ColoringEnabled = coloring }()
		fmt.Fprintln(out)
		pp.Fprintln(out, *cfg)
	}
}
