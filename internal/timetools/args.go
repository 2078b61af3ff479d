package timetools

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateArguments checks args against the input schema declared for k.
// Required fields and JSON types are enforced; keys the schema does not list
// are tolerated at call time, since hosts may attach their own metadata.
func ValidateArguments(k Kind, args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}
	schemaLoader := gojsonschema.NewGoLoader(validationSchema(k.Definition().InputSchema))
	documentLoader := gojsonschema.NewGoLoader(args)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("%w: schema validation error: %v", ErrMissingArgument, err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrMissingArgument, strings.Join(errs, ", "))
}

// validationSchema copies a declared schema, dropping additionalProperties
// and an empty required list.
func validationSchema(declared map[string]any) map[string]any {
	out := make(map[string]any, len(declared))
	for key, val := range declared {
		switch key {
		case "additionalProperties":
			continue
		case "required":
			if req, ok := val.([]string); ok && len(req) == 0 {
				continue
			}
		}
		out[key] = val
	}
	return out
}

func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok {
		return "", fmt.Errorf("%w: %q is required", ErrMissingArgument, name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string", ErrMissingArgument, name)
	}
	return s, nil
}

// int64Arg accepts the numeric shapes a JSON decoder can produce for an
// integer: json.Number, integral float64, and the Go integer types.
func int64Arg(args map[string]any, name string) (int64, error) {
	v, ok := args[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q is required", ErrMissingArgument, name)
	}
	var (
		n   int64
		err error
	)
	switch val := v.(type) {
	case json.Number:
		if n, err = val.Int64(); err != nil {
			var f float64
			if f, err = val.Float64(); err == nil {
				n, err = floatToInt64(f)
			}
		}
	case float64:
		n, err = floatToInt64(val)
	case float32:
		n, err = floatToInt64(float64(val))
	case int:
		n = int64(val)
	case int8:
		n = int64(val)
	case int16:
		n = int64(val)
	case int32:
		n = int64(val)
	case int64:
		n = val
	case uint:
		n, err = uint64ToInt64(uint64(val))
	case uint8:
		n = int64(val)
	case uint16:
		n = int64(val)
	case uint32:
		n = int64(val)
	case uint64:
		n, err = uint64ToInt64(val)
	default:
		err = fmt.Errorf("got %T", v)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %q must be a 64-bit integer (%v)", ErrMissingArgument, name, err)
	}
	return n, nil
}

func floatToInt64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	// 2^63 is exactly representable; anything at or above it overflows.
	if f < -(1<<63) || f >= 1<<63 {
		return 0, fmt.Errorf("%v overflows int64", f)
	}
	return int64(f), nil
}

func uint64ToInt64(u uint64) (int64, error) {
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("%d overflows int64", u)
	}
	return int64(u), nil
}
