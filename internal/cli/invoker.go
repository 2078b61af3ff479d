// internal/cli/invoker.go
package timetool

import (
	"context"
	"fmt"

	"github.com/mwiater/timetool/internal/appconfig"
	"github.com/mwiater/timetool/internal/logging"
	"github.com/mwiater/timetool/internal/mcpclient"
	"github.com/mwiater/timetool/internal/timetools"
)

// newRemoteClient starts the MCP server binary; tests replace it.
var newRemoteClient = func(ctx context.Context, cfg *appconfig.Config) (timetools.Invoker, func() error, error) {
	client, err := mcpclient.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

// openInvoker returns the in-process tools, or a client for the MCP server
// binary when remote is set. The returned func releases it.
func openInvoker(ctx context.Context, cfg *appconfig.Config, remote bool) (timetools.Invoker, func(), error) {
	if !remote {
		return timetools.Local{}, func() {}, nil
	}
	inv, closeFn, err := newRemoteClient(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("start MCP server: %w", err)
	}
	return inv, func() {
		if err := closeFn(); err != nil {
			logging.LogEvent("MCP server shutdown error: %v", err)
		}
	}, nil
}
