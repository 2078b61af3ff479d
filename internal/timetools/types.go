package timetools

// Definition describes the metadata the MCP server exposes for a tool.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ContentPart represents a piece of data returned from a tool invocation.
type ContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallRequest selects a tool by name and carries its arguments.
type CallRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// CallResult is what a tool invocation hands back to the host.
type CallResult struct {
	Content []ContentPart `json:"content"`
	IsError bool          `json:"isError"`
}

// Payload is the JSON document carried in the text content of every
// successful call.
type Payload struct {
	UTCTime        string `json:"utc_time"`
	UTCTimeRFC2822 string `json:"utc_time_rfc2822"`
}

// Text returns the concatenated text of all "text" content parts.
func (r CallResult) Text() string {
	var out string
	for _, part := range r.Content {
		if part.Type != ContentTypeText {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += part.Text
	}
	return out
}

const (
	// ContentTypeText is the only content type produced by these tools.
	ContentTypeText = "text"

	// GetTimeUTCName is the canonical name for the current-time tool.
	GetTimeUTCName = "get_time_utc"
	// ParseTimeName is the canonical name for the RFC 2822 parsing tool.
	ParseTimeName = "parse_time"
	// TimeOffsetName is the canonical name for the offset tool.
	TimeOffsetName = "time_offset"

	argTimeRFC2822 = "time_rfc2822"
	argTimestamp   = "timestamp"
	argOffset      = "offset"
)
