package mcpserver

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mwiater/timetool/internal/appconfig"
)

// errEmptyMessage marks a blank ndjson line; callers skip it.
var errEmptyMessage = errors.New("empty message")

// maxFrameSize bounds the body a Content-Length header may announce.
const maxFrameSize = 4 << 20

// frameReader reads JSON-RPC bodies framed either with Content-Length
// headers or as newline-delimited JSON.
type frameReader struct {
	r    *bufio.Reader
	mode appconfig.Framing
}

func newFrameReader(r io.Reader, mode appconfig.Framing) *frameReader {
	return &frameReader{r: bufio.NewReader(r), mode: mode}
}

// next returns the next message body and the framing it arrived in.
func (f *frameReader) next() ([]byte, appconfig.Framing, error) {
	for {
		mode := f.mode
		if mode == appconfig.FramingAuto {
			detected, err := f.detect()
			if err != nil {
				return nil, "", err
			}
			mode = detected
		}

		var (
			body []byte
			err  error
		)
		switch mode {
		case appconfig.FramingNDJSON:
			body, err = f.readLine()
		default:
			body, err = f.readHeaders()
		}
		if errors.Is(err, errEmptyMessage) {
			continue
		}
		return body, mode, err
	}
}

// detect skips inter-message whitespace and picks the framing from the first
// significant byte: a JSON value starts ndjson, anything else is a header.
func (f *frameReader) detect() (appconfig.Framing, error) {
	for {
		b, err := f.r.Peek(1)
		if err != nil {
			return "", err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			_, _ = f.r.ReadByte()
			continue
		case '{', '[':
			return appconfig.FramingNDJSON, nil
		default:
			return appconfig.FramingContentLength, nil
		}
	}
}

func (f *frameReader) readLine() ([]byte, error) {
	line, err := f.r.ReadBytes('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(bytes.TrimSpace(line)) > 0 {
			return bytes.TrimSpace(line), nil
		}
		return nil, err
	}
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, errEmptyMessage
	}
	return line, nil
}

func (f *frameReader) readHeaders() ([]byte, error) {
	// Read headers until blank line
	headers := map[string]string{}
	for {
		line, err := f.r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && len(headers) > 0 {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		if line == "\r\n" || line == "\n" {
			break
		}
		s := strings.TrimRight(line, "\r\n")
		if s == "" {
			break
		}
		if i := strings.IndexByte(s, ':'); i >= 0 {
			key := strings.ToLower(strings.TrimSpace(s[:i]))
			val := strings.TrimSpace(s[i+1:])
			headers[key] = val
		}
	}
	clStr, ok := headers["content-length"]
	if !ok {
		return nil, fmt.Errorf("missing Content-Length")
	}
	var length int
	if _, err := fmt.Sscanf(clStr, "%d", &length); err != nil || length < 0 {
		return nil, fmt.Errorf("invalid Content-Length: %q", clStr)
	}
	if length > maxFrameSize {
		return nil, fmt.Errorf("frame of %d bytes exceeds the %d byte limit", length, maxFrameSize)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(f.r, body); err != nil {
		return nil, err
	}
	return body, nil
}

// writeFrame writes one message body using the given framing.
func writeFrame(w *bufio.Writer, mode appconfig.Framing, data []byte) error {
	switch mode {
	case appconfig.FramingNDJSON:
		if _, err := w.Write(data); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	default:
		if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return w.Flush()
}
