// Package mcpclient talks to an MCP time-tool server over a pair of streams,
// usually the stdin/stdout of a spawned server process.
package mcpclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/mwiater/timetool/internal/appconfig"
	"github.com/mwiater/timetool/internal/logging"
)

// Client is a JSON-RPC connection to an MCP server. Calls are serialized.
type Client struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	reader *bufio.Reader
	writer *bufio.Writer

	seqMu  sync.Mutex
	seq    int64
	rpcMu  sync.Mutex
	broken error // guarded by rpcMu

	initTimeout time.Duration
	serverName  string
}

// New spins up the MCP server process and performs the initialize handshake.
func New(ctx context.Context, cfg *appconfig.Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mcp client requires non-nil config")
	}

	binary := cfg.MCPBinaryPath()
	if _, err := os.Stat(binary); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.LogEvent("MCP server start aborted: binary %q missing", binary)
			return nil, fmt.Errorf("mcp binary not found at %q", binary)
		}
		logging.LogEvent("MCP server start aborted: binary %q not accessible (%v)", binary, err)
		return nil, fmt.Errorf("mcp binary %q not accessible: %w", binary, err)
	}

	args := []string{}
	if cfg.ConfigPath != "" {
		args = append(args, "--config", cfg.ConfigPath)
	}
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Env = os.Environ()
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("mcp stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("mcp stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		logging.LogEvent("MCP server failed to start: %v", err)
		return nil, fmt.Errorf("start mcp server: %w", err)
	}

	client := newClient(stdout, stdin, cfg.MCPInitTimeoutDuration())
	client.cmd = cmd

	if err := client.Initialize(ctx); err != nil {
		logging.LogEvent("MCP server initialization failed: %v", err)
		client.Close()
		return nil, err
	}
	logging.LogEvent("MCP server started: binary=%s pid=%d server=%s", binary, cmd.Process.Pid, client.serverName)
	return client, nil
}

// NewConn attaches to an already running server reachable through r and w.
// The caller performs Initialize.
func NewConn(r io.Reader, w io.WriteCloser) *Client {
	return newClient(r, w, 0)
}

func newClient(r io.Reader, w io.WriteCloser, initTimeout time.Duration) *Client {
	if initTimeout <= 0 {
		initTimeout = (appconfig.Config{}).MCPInitTimeoutDuration()
	}
	return &Client{
		stdin:       w,
		reader:      bufio.NewReader(r),
		writer:      bufio.NewWriter(w),
		initTimeout: initTimeout,
	}
}

// ServerName returns the name the server announced during Initialize.
func (c *Client) ServerName() string {
	return c.serverName
}

// Close terminates the server process, if this client started one.
func (c *Client) Close() error {
	var firstErr error

	if c.stdin != nil {
		if err := c.stdin.Close(); err != nil && c.cmd == nil {
			firstErr = err
		}
	}

	if c.cmd != nil && c.cmd.Process != nil {
		done := make(chan error, 1)
		go func() {
			done <- c.cmd.Wait()
		}()
		select {
		case err := <-done:
			if err != nil && firstErr == nil {
				firstErr = err
			}
		case <-time.After(2 * time.Second):
			_ = c.cmd.Process.Kill()
			if err := <-done; err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
