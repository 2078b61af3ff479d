package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func swapConsole(t *testing.T, w io.Writer) {
	t.Helper()
	orig := console
	console = w
	t.Cleanup(func() {
		_ = Close()
		console = orig
		SetDebug(false)
	})
}

func TestInitAndLoggingToFile(t *testing.T) {
	var stderr bytes.Buffer
	swapConsole(t, &stderr)

	logPath := filepath.Join(t.TempDir(), "nested", "timetool.log")
	if err := Init(logPath); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	LogEvent("hello %s", "world")
	LogDebug("hidden %d", 1)
	SetDebug(true)
	LogDebug("shown %d", 2)
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if strings.Contains(content, "hidden 1") {
		t.Fatalf("debug line written while debug disabled: %s", content)
	}
	if !strings.Contains(content, "[DEBUG] shown 2") {
		t.Fatalf("expected debug line, got: %s", content)
	}
	if !strings.Contains(stderr.String(), "hello world") {
		t.Fatalf("expected console copy, got: %s", stderr.String())
	}
}

func TestLogRequestRequiresDebug(t *testing.T) {
	var stderr bytes.Buffer
	swapConsole(t, &stderr)
	if err := Init(""); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	LogRequest("in", "abc", "parse_time", map[string]any{"ok": true})
	if stderr.Len() != 0 {
		t.Fatalf("expected no output without debug, got: %s", stderr.String())
	}

	SetDebug(true)
	LogRequest("in", "abc", "parse_time", map[string]any{"ok": true})
	if !strings.Contains(stderr.String(), `[IN] session=abc tool=parse_time payload={"ok":true}`) {
		t.Fatalf("unexpected request line: %s", stderr.String())
	}
}

func TestBuildRequestMessageDefaults(t *testing.T) {
	msg := buildRequestMessage(" out ", " ", " ", []byte(`{"id":1}`))
	if msg != `[OUT] session=unknown payload={"id":1}` {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestFormatPayloadVariants(t *testing.T) {
	if got := formatPayload(nil); got != "null" {
		t.Fatalf("nil payload: %s", got)
	}
	if got := formatPayload(" "); got != `""` {
		t.Fatalf("empty string payload: %s", got)
	}
	if got := formatPayload([]byte{}); got != "[]" {
		t.Fatalf("empty byte payload: %s", got)
	}
	if got := formatPayload([]byte("hi")); got != "hi" {
		t.Fatalf("byte payload: %s", got)
	}
	if got := formatPayload(testStringer("ok")); got != "ok" {
		t.Fatalf("stringer payload: %s", got)
	}
	if got := formatPayload(make(chan int)); !strings.HasPrefix(got, "0x") {
		t.Fatalf("unmarshalable payload should fall back to %%v, got: %s", got)
	}
}
