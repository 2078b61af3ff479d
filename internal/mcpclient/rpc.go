package mcpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mwiater/timetool/internal/logging"
)

// maxFrameSize bounds the body a Content-Length header may announce.
const maxFrameSize = 4 << 20

// errConnBroken is returned once a read has been abandoned or has failed;
// the stream position is unknown after that.
var errConnBroken = errors.New("mcp connection unusable")

type jsonrpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonrpcError   `json:"error,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RPCError is a JSON-RPC error object returned by the server.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func (c *Client) nextID() int64 {
	c.seqMu.Lock()
	defer c.seqMu.Unlock()
	c.seq++
	return c.seq
}

func (c *Client) writeRawFrame(data []byte) error {
	if _, err := fmt.Fprintf(c.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := c.writer.Write(data); err != nil {
		return err
	}
	return c.writer.Flush()
}

func (c *Client) readResponse(ctx context.Context) (jsonrpcResponse, []byte, error) {
	type result struct {
		resp jsonrpcResponse
		raw  []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		r, raw, err := c.readResponseBlocking()
		done <- result{resp: r, raw: raw, err: err}
	}()

	select {
	case <-ctx.Done():
		return jsonrpcResponse{}, nil, ctx.Err()
	case res := <-done:
		return res.resp, res.raw, res.err
	}
}

func (c *Client) readResponseBlocking() (jsonrpcResponse, []byte, error) {
	headers := make(map[string]string)
	for {
		line, err := c.reader.ReadString('\n')
		if err != nil {
			return jsonrpcResponse{}, nil, err
		}
		if line == "\r\n" || line == "\n" {
			break
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if idx := strings.IndexByte(line, ':'); idx >= 0 {
			headers[strings.ToLower(strings.TrimSpace(line[:idx]))] = strings.TrimSpace(line[idx+1:])
		}
	}

	cl, ok := headers["content-length"]
	if !ok {
		return jsonrpcResponse{}, nil, fmt.Errorf("missing Content-Length header")
	}

	var length int
	if _, err := fmt.Sscanf(cl, "%d", &length); err != nil {
		return jsonrpcResponse{}, nil, fmt.Errorf("invalid Content-Length: %w", err)
	}
	if length < 0 || length > maxFrameSize {
		return jsonrpcResponse{}, nil, fmt.Errorf("invalid Content-Length %d (limit %d bytes)", length, maxFrameSize)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(c.reader, body); err != nil {
		return jsonrpcResponse{}, nil, err
	}

	var resp jsonrpcResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return jsonrpcResponse{}, body, err
	}
	return resp, body, nil
}

// call sends one request and waits for its response. tool only labels logs.
func (c *Client) call(ctx context.Context, method string, params any, tool string) (json.RawMessage, error) {
	c.rpcMu.Lock()
	defer c.rpcMu.Unlock()

	if c.broken != nil {
		return nil, fmt.Errorf("%w: %v", errConnBroken, c.broken)
	}

	id := c.nextID()
	payload := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		payload["params"] = params
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	label := method
	if tool != "" {
		label = tool
	}
	logging.LogRequest("CLI->MCP", c.serverName, label, data)

	if err := c.writeRawFrame(data); err != nil {
		return nil, err
	}

	resp, raw, err := c.readResponse(ctx)
	if err != nil {
		// A body that failed to decode was still consumed whole; anything
		// else leaves a reader parked on, or partway through, the stream.
		if raw == nil {
			c.broken = err
		}
		return nil, err
	}
	logging.LogRequest("MCP->CLI", c.serverName, label, raw)

	if got := strings.TrimSpace(string(resp.ID)); got != fmt.Sprintf("%d", id) {
		return nil, fmt.Errorf("response id %s does not match request id %d", got, id)
	}
	if resp.Error != nil {
		return nil, &RPCError{Code: resp.Error.Code, Message: resp.Error.Message}
	}
	return resp.Result, nil
}

// notify sends a request without an id; no response is expected.
func (c *Client) notify(method string) error {
	c.rpcMu.Lock()
	defer c.rpcMu.Unlock()

	data, err := json.Marshal(map[string]any{"jsonrpc": "2.0", "method": method})
	if err != nil {
		return err
	}
	logging.LogRequest("CLI->MCP", c.serverName, method, data)
	return c.writeRawFrame(data)
}
