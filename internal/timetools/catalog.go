package timetools

// GetTimeUTCDefinition describes the current-time tool for discovery by the MCP host.
func GetTimeUTCDefinition() Definition {
	return Definition{
		Name:        GetTimeUTCName,
		Description: "Get the current UTC time as a UNIX timestamp and RFC 2822 string",
		InputSchema: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{},
			"required":             []string{},
			"additionalProperties": false,
		},
	}
}

// ParseTimeDefinition describes the RFC 2822 parsing tool.
func ParseTimeDefinition() Definition {
	return Definition{
		Name:        ParseTimeName,
		Description: "Parse an RFC 2822 datetime string and return UTC timestamp and RFC 2822",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				argTimeRFC2822: map[string]any{
					"type":        "string",
					"description": "Datetime in RFC 2822 format, e.g. 'Mon, 02 Jan 2006 15:04:05 +0000'",
				},
			},
			"required":             []string{argTimeRFC2822},
			"additionalProperties": false,
		},
	}
}

// TimeOffsetDefinition describes the offset tool.
func TimeOffsetDefinition() Definition {
	return Definition{
		Name:        TimeOffsetName,
		Description: "Apply an offset (in seconds) to a UTC timestamp and return the new time",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				argTimestamp: map[string]any{
					"type":        "integer",
					"description": "Base UNIX timestamp (seconds)",
				},
				argOffset: map[string]any{
					"type":        "integer",
					"description": "Offset in seconds to add (negative to subtract)",
				},
			},
			"required":             []string{argTimestamp, argOffset},
			"additionalProperties": false,
		},
	}
}

// Definition returns the catalog entry for k.
func (k Kind) Definition() Definition {
	switch k {
	case GetTimeUTC:
		return GetTimeUTCDefinition()
	case ParseTime:
		return ParseTimeDefinition()
	case TimeOffset:
		return TimeOffsetDefinition()
	default:
		panic("timetools: definition requested for " + k.String())
	}
}

// Describe returns the full tool catalog in a fixed order.
func Describe() []Definition {
	defs := make([]Definition, 0, len(Kinds))
	for _, k := range Kinds {
		defs = append(defs, k.Definition())
	}
	return defs
}
