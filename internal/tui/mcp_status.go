// internal/tui/mcp_status.go
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/timetool/internal/timetools"
)

// transport describes where tool calls are executed.
type transport string

const (
	// transportLocal runs tools in-process.
	transportLocal transport = "local"
	// transportMCP sends tools/call requests to an MCP server process.
	transportMCP transport = "mcp"
)

// named is implemented by invokers that know the server they talk to.
type named interface {
	ServerName() string
}

// deriveTransport reports whether inv runs tools locally or over MCP, and
// the server name when there is one.
func deriveTransport(inv timetools.Invoker) (transport, string) {
	switch v := inv.(type) {
	case timetools.Local, *timetools.Local:
		return transportLocal, ""
	case named:
		return transportMCP, v.ServerName()
	default:
		return transportMCP, ""
	}
}

// formatTransportIndicator returns a human-readable label for the transport.
func formatTransportIndicator(t transport, server string) string {
	switch t {
	case transportMCP:
		if server != "" {
			return "MCP: " + server
		}
		return "MCP: active"
	default:
		return "Tools: local"
	}
}

// renderTransportBadge returns a Lipgloss-styled badge for the transport.
func renderTransportBadge(t transport, server string) string {
	badgeStyle := lipgloss.NewStyle().Background(lipgloss.Color("229")).Foreground(lipgloss.Color("0")).Padding(0, 1).MarginLeft(1)
	return badgeStyle.Render(formatTransportIndicator(t, server))
}

// renderJSONBadge returns a Lipgloss-styled badge string for JSON mode.
func renderJSONBadge(enabled bool) string {
	label := "JSON Mode: off"
	if enabled {
		label = "JSON Mode: on"
	}
	badgeStyle := lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("0")).Padding(0, 1)
	return badgeStyle.Render(label)
}
