package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ParseCommandLine splits a console line into a tool name and its arguments.
// Arguments are either one JSON object or a list of key=value assignments:
//
//	parse_time {"time_rfc2822":"Mon, 02 Jan 2006 15:04:05 +0000"}
//	parse_time time_rfc2822=Mon, 02 Jan 2006 15:04:05 +0000
//	time_offset timestamp=1136214245 offset=-3600
func ParseCommandLine(line string) (string, map[string]any, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil, fmt.Errorf("empty input")
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return name, map[string]any{}, nil
	}
	if strings.HasPrefix(rest, "{") {
		args, err := decodeObject(rest)
		if err != nil {
			return "", nil, fmt.Errorf("arguments: %w", err)
		}
		return name, args, nil
	}

	args, err := ParseAssignments(joinContinuations(strings.Fields(rest)))
	if err != nil {
		return "", nil, err
	}
	return name, args, nil
}

// ParseAssignments turns key=value pairs into an argument map. A value that
// is valid JSON is decoded (numbers stay exact); anything else is a string.
func ParseAssignments(pairs []string) (map[string]any, error) {
	args := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		args[key] = decodeValue(strings.TrimSpace(value))
	}
	return args, nil
}

// joinContinuations glues words that are not assignments onto the previous
// assignment, so unquoted values may contain spaces.
func joinContinuations(words []string) []string {
	var pairs []string
	for _, w := range words {
		if isAssignment(w) || len(pairs) == 0 {
			pairs = append(pairs, w)
			continue
		}
		pairs[len(pairs)-1] += " " + w
	}
	return pairs
}

func isAssignment(word string) bool {
	key, _, ok := strings.Cut(word, "=")
	if !ok || key == "" {
		return false
	}
	for i, r := range key {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func decodeObject(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var args map[string]any
	if err := dec.Decode(&args); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON object")
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func decodeValue(s string) any {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return s
	}
	return v
}
