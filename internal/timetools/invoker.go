package timetools

import "context"

// Invoker is anything that can list and run the time tools: the in-process
// Local implementation or a client connected to an MCP server.
type Invoker interface {
	Describe(ctx context.Context) ([]Definition, error)
	Call(ctx context.Context, name string, args map[string]any) (CallResult, error)
}

// Local runs the tools in-process. Like a server, it reports tool failures
// as error results rather than errors.
type Local struct{}

// Describe returns the static catalog.
func (Local) Describe(context.Context) ([]Definition, error) {
	return Describe(), nil
}

// Call runs the named tool.
func (Local) Call(_ context.Context, name string, args map[string]any) (CallResult, error) {
	return Invoke(CallRequest{Name: name, Arguments: args}), nil
}
