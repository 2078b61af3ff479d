// internal/tui/invoker_test.go
package tui

import (
	"context"

	"github.com/mwiater/timetool/internal/timetools"
)

// testInvoker records calls and answers from canned results.
type testInvoker struct {
	server   string
	tools    []timetools.Definition
	describe error
	results  map[string]timetools.CallResult
	calls    []string
	lastArgs map[string]any
}

// newTestInvoker creates a testInvoker serving the real catalog.
func newTestInvoker() *testInvoker {
	return &testInvoker{
		server:  "test-mcp",
		tools:   timetools.Describe(),
		results: make(map[string]timetools.CallResult),
	}
}

// Describe returns the configured catalog or error.
func (i *testInvoker) Describe(ctx context.Context) ([]timetools.Definition, error) {
	if i.describe != nil {
		return nil, i.describe
	}
	return i.tools, nil
}

// Call records the request and returns the canned result for name.
func (i *testInvoker) Call(ctx context.Context, name string, args map[string]any) (timetools.CallResult, error) {
	i.calls = append(i.calls, name)
	i.lastArgs = args
	if res, ok := i.results[name]; ok {
		return res, nil
	}
	return timetools.Invoke(timetools.CallRequest{Name: name, Arguments: args}), nil
}

// ServerName makes the invoker look like a remote client.
func (i *testInvoker) ServerName() string { return i.server }
