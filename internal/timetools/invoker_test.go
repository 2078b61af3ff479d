package timetools

import (
	"context"
	"strings"
	"testing"
)

var _ Invoker = Local{}

func TestLocalInvoker(t *testing.T) {
	ctx := context.Background()
	var inv Invoker = Local{}

	defs, err := inv.Describe(ctx)
	if err != nil || len(defs) != 3 {
		t.Fatalf("Describe = %d definitions, err %v", len(defs), err)
	}

	res, err := inv.Call(ctx, TimeOffsetName, map[string]any{"timestamp": 0, "offset": 86400})
	if err != nil {
		t.Fatalf("Call error: %v", err)
	}
	if res.IsError || !strings.Contains(res.Text(), `"utc_time":"86400"`) {
		t.Fatalf("unexpected result: %+v", res)
	}

	res, err = inv.Call(ctx, "nope", nil)
	if err != nil {
		t.Fatalf("unknown tool should be an error result, got %v", err)
	}
	if !res.IsError || !strings.Contains(res.Text(), "unknown command") {
		t.Fatalf("expected unknown command result, got %+v", res)
	}
}
