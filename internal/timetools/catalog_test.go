package timetools

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDescribeCatalog(t *testing.T) {
	defs := Describe()
	if len(defs) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(defs))
	}

	wantRequired := map[string][]string{
		GetTimeUTCName: {},
		ParseTimeName:  {"time_rfc2822"},
		TimeOffsetName: {"timestamp", "offset"},
	}
	var names []string
	for _, def := range defs {
		names = append(names, def.Name)
		if def.Description == "" {
			t.Fatalf("tool %s has no description", def.Name)
		}
		if def.InputSchema["type"] != "object" {
			t.Fatalf("tool %s schema type = %v", def.Name, def.InputSchema["type"])
		}
		if def.InputSchema["additionalProperties"] != false {
			t.Fatalf("tool %s must forbid additional properties", def.Name)
		}
		if diff := cmp.Diff(wantRequired[def.Name], def.InputSchema["required"]); diff != "" {
			t.Fatalf("tool %s required mismatch (-want +got):\n%s", def.Name, diff)
		}
	}
	if diff := cmp.Diff([]string{"get_time_utc", "parse_time", "time_offset"}, names); diff != "" {
		t.Fatalf("tool order mismatch (-want +got):\n%s", diff)
	}
}

func TestDescribeJSONShape(t *testing.T) {
	data, err := json.Marshal(Describe())
	if err != nil {
		t.Fatalf("marshal catalog: %v", err)
	}
	var decoded []struct {
		Name        string `json:"name"`
		InputSchema struct {
			Type                 string                       `json:"type"`
			Properties           map[string]map[string]string `json:"properties"`
			Required             []string                     `json:"required"`
			AdditionalProperties bool                         `json:"additionalProperties"`
		} `json:"inputSchema"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal catalog: %v", err)
	}
	offset := decoded[2]
	if offset.InputSchema.Properties["timestamp"]["type"] != "integer" {
		t.Fatalf("timestamp must be an integer, got %+v", offset.InputSchema.Properties)
	}
	if offset.InputSchema.Properties["offset"]["type"] != "integer" {
		t.Fatalf("offset must be an integer, got %+v", offset.InputSchema.Properties)
	}
	if decoded[1].InputSchema.Properties["time_rfc2822"]["type"] != "string" {
		t.Fatalf("time_rfc2822 must be a string")
	}
	if decoded[0].InputSchema.Required == nil {
		t.Fatalf("get_time_utc must declare an empty required list, not omit it")
	}
}

func TestKindNames(t *testing.T) {
	for _, k := range Kinds {
		parsed, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%s) error: %v", k, err)
		}
		if parsed != k {
			t.Fatalf("ParseKind(%s) = %v", k, parsed)
		}
		if k.Definition().Name != k.String() {
			t.Fatalf("definition name %q does not match kind %q", k.Definition().Name, k)
		}
	}
	if _, err := ParseKind("bogus"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if Kind(99).String() != "Kind(99)" {
		t.Fatalf("unexpected String for unknown kind: %s", Kind(99))
	}
}

func TestValidateArgumentsToleratesExtraKeys(t *testing.T) {
	err := ValidateArguments(TimeOffset, map[string]any{"timestamp": 1, "offset": 2, "__host": "x"})
	if err != nil {
		t.Fatalf("expected extra keys to be tolerated, got %v", err)
	}
	if err := ValidateArguments(ParseTime, nil); !errors.Is(err, ErrMissingArgument) {
		t.Fatalf("expected ErrMissingArgument, got %v", err)
	}
}
