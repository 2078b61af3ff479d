// Package mcpserver serves the time tools over the Model Context Protocol:
// JSON-RPC 2.0 on stdio, with Content-Length or newline-delimited framing.
package mcpserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwiater/timetool/internal/appconfig"
	"github.com/mwiater/timetool/internal/logging"
	"github.com/mwiater/timetool/internal/metrics"
	"github.com/mwiater/timetool/internal/timetools"
)

// DefaultProtocolVersion is announced when the host does not ask for one.
const DefaultProtocolVersion = "2024-11-05"

// Version is reported in serverInfo; release builds set it with -ldflags.
var Version = "dev"

// Server answers MCP requests for the time tools. A Server holds no
// per-request state; each Serve call is an independent session.
type Server struct {
	name    string
	version string
	framing appconfig.Framing
}

// New returns a Server configured from cfg.
func New(cfg appconfig.Config) *Server {
	return &Server{
		name:    cfg.ServerDisplayName(),
		version: Version,
		framing: cfg.FramingMode(),
	}
}

type frame struct {
	body    []byte
	framing appconfig.Framing
	err     error
}

// Serve reads requests from r and writes responses to w until r is
// exhausted (nil), ctx is cancelled (ctx.Err()), or the stream cannot be
// deframed, in which case a best-effort error frame is written first.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	session := uuid.NewString()
	reader := newFrameReader(r, s.framing)
	writer := bufio.NewWriter(w)
	stats := metrics.NewAggregator()
	defer func() {
		logging.LogEvent("MCP session stats: session=%s %s", session, stats.Summary())
	}()

	frames := make(chan frame)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			body, framing, err := reader.next()
			select {
			case frames <- frame{body: body, framing: framing, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()

	logging.LogEvent("MCP session started: session=%s server=%s framing=%s", session, s.name, s.framing)

	for {
		var f frame
		select {
		case <-ctx.Done():
			logging.LogEvent("MCP session cancelled: session=%s", session)
			return ctx.Err()
		case f = <-frames:
		}

		if f.err != nil {
			if errors.Is(f.err, io.EOF) {
				logging.LogEvent("MCP session closed: session=%s", session)
				return nil
			}
			// write a best-effort error frame without id to keep stream sane
			mode := f.framing
			if mode == "" {
				mode = s.framing
			}
			_ = s.write(writer, mode, session, "", makeError(nil, codeServerError, f.err.Error()))
			return fmt.Errorf("read message: %w", f.err)
		}

		logging.LogRequest("HOST->MCP", session, "", f.body)
		resp, tool := s.handle(f.body, stats)
		if resp == nil {
			continue
		}
		if err := s.write(writer, f.framing, session, tool, resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
}

func (s *Server) write(w *bufio.Writer, mode appconfig.Framing, session, tool string, resp *jsonrpcResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		data, _ = json.Marshal(makeError(resp.ID, codeServerError, err.Error()))
	}
	logging.LogRequest("MCP->HOST", session, tool, data)
	return writeFrame(w, mode, data)
}

// handle decodes one message body and returns the response to send, or nil
// for notifications. The tool name, if any, is returned for logging.
func (s *Server) handle(body []byte, stats *metrics.Aggregator) (*jsonrpcResponse, string) {
	var req jsonrpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return makeError(nil, codeParseError, "Parse error"), ""
	}
	if req.Method == "" {
		if req.isNotification() {
			return nil, ""
		}
		return makeError(req.ID, codeInvalidRequest, "Invalid Request"), ""
	}

	resp, tool := s.dispatch(&req, stats)
	if req.isNotification() {
		return nil, tool
	}
	return resp, tool
}

func (s *Server) dispatch(req *jsonrpcRequest, stats *metrics.Aggregator) (*jsonrpcResponse, string) {
	switch req.Method {
	case "initialize":
		var p initializeParams
		if len(req.Params) > 0 {
			_ = json.Unmarshal(req.Params, &p)
		}
		version := p.ProtocolVersion
		if version == "" {
			version = DefaultProtocolVersion
		}
		result := map[string]any{
			"protocolVersion": version,
			"serverInfo":      map[string]any{"name": s.name, "version": s.version},
			"capabilities":    map[string]any{"tools": map[string]any{}},
		}
		return makeResult(req.ID, result), ""

	case "ping":
		return makeResult(req.ID, map[string]any{}), ""

	case "tools/list":
		result := map[string]any{"tools": timetools.Describe()}
		return makeResult(req.ID, result), ""

	case "tools/call":
		var p toolsCallParams
		if len(req.Params) > 0 {
			dec := json.NewDecoder(bytes.NewReader(req.Params))
			dec.UseNumber()
			if err := dec.Decode(&p); err != nil {
				return makeError(req.ID, codeInvalidParams, "Invalid params"), ""
			}
		}
		start := time.Now()
		result := timetools.Invoke(timetools.CallRequest{Name: p.Name, Arguments: p.Arguments})
		stats.Record(p.Name, result.IsError, time.Since(start))
		if result.IsError {
			logging.LogEvent("MCP tool failed: tool=%s reason=%s", p.Name, result.Text())
		}
		return makeResult(req.ID, result), p.Name
	}

	if strings.HasPrefix(req.Method, "notifications/") {
		return nil, ""
	}
	return makeError(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method)), ""
}
