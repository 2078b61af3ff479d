// Package timetools implements the time tools exposed to MCP hosts: the
// static catalog returned by Describe and the dispatcher behind Call.
package timetools

import "fmt"

// Call runs the tool named in req. Absent arguments are treated as empty.
// When req.Name is empty, a string "name" argument selects the tool instead.
func Call(req CallRequest) (CallResult, error) {
	args := req.Arguments
	if args == nil {
		args = map[string]any{}
	}
	name := req.Name
	if name == "" {
		if s, ok := args["name"].(string); ok {
			name = s
		}
	}

	// The bare sentinel keeps the host-visible message exactly "unknown command".
	kind, err := ParseKind(name)
	if err != nil {
		return CallResult{}, err
	}
	payload, err := run(kind, args)
	if err != nil {
		return CallResult{}, fmt.Errorf("%s: %w", kind, err)
	}
	return textResult(payload)
}

// Invoke is Call for transports that must always produce a result: any error
// becomes an error result carrying the message.
func Invoke(req CallRequest) CallResult {
	result, err := Call(req)
	if err != nil {
		return ErrorResult(err)
	}
	return result
}

// ErrorResult wraps err as a result marked isError.
func ErrorResult(err error) CallResult {
	return CallResult{
		Content: []ContentPart{{Type: ContentTypeText, Text: err.Error()}},
		IsError: true,
	}
}

func run(k Kind, args map[string]any) (Payload, error) {
	if err := ValidateArguments(k, args); err != nil {
		return Payload{}, err
	}

	switch k {
	case GetTimeUTC:
		return CurrentTime()

	case ParseTime:
		s, err := stringArg(args, argTimeRFC2822)
		if err != nil {
			return Payload{}, err
		}
		return ParseRFC2822(s)

	case TimeOffset:
		ts, err := int64Arg(args, argTimestamp)
		if err != nil {
			return Payload{}, err
		}
		off, err := int64Arg(args, argOffset)
		if err != nil {
			return Payload{}, err
		}
		return Offset(ts, off)
	}

	return Payload{}, ErrUnknownCommand
}
