package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mwiater/timetool/internal/timetools"
)

const protocolVersion = "2024-11-05"

// Initialize performs the MCP handshake and sends notifications/initialized.
func (c *Client) Initialize(ctx context.Context) error {
	initCtx, cancel := context.WithTimeout(ctx, c.initTimeout)
	defer cancel()

	params := map[string]any{
		"protocolVersion": protocolVersion,
		"clientInfo":      map[string]any{"name": "timetool", "version": "dev"},
		"capabilities":    map[string]any{},
	}
	raw, err := c.call(initCtx, "initialize", params, "")
	if err != nil {
		return fmt.Errorf("mcp initialize: %w", err)
	}

	var result struct {
		ServerInfo struct {
			Name string `json:"name"`
		} `json:"serverInfo"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("decode initialize result: %w", err)
	}
	c.serverName = result.ServerInfo.Name

	return c.notify("notifications/initialized")
}

// Describe returns the server's tool catalog via tools/list.
func (c *Client) Describe(ctx context.Context) ([]timetools.Definition, error) {
	raw, err := c.call(ctx, "tools/list", map[string]any{}, "")
	if err != nil {
		return nil, fmt.Errorf("mcp tools/list: %w", err)
	}
	var result struct {
		Tools []timetools.Definition `json:"tools"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode tools/list result: %w", err)
	}
	return result.Tools, nil
}

// Call invokes a tool via tools/call. A tool-level failure comes back as a
// result with IsError set, not as an error.
func (c *Client) Call(ctx context.Context, name string, args map[string]any) (timetools.CallResult, error) {
	if args == nil {
		args = map[string]any{}
	}
	params := map[string]any{"name": name, "arguments": args}
	raw, err := c.call(ctx, "tools/call", params, name)
	if err != nil {
		return timetools.CallResult{}, fmt.Errorf("mcp tools/call %s: %w", name, err)
	}
	var result timetools.CallResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return timetools.CallResult{}, fmt.Errorf("decode tools/call result: %w", err)
	}
	return result, nil
}
