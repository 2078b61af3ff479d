package timetools

import "fmt"

// Kind identifies one of the known tools. Tool names only exist at the
// serialization boundary; everything inside the package switches on Kind.
type Kind int

const (
	GetTimeUTC Kind = iota + 1
	ParseTime
	TimeOffset
)

// Kinds lists every tool in catalog order.
var Kinds = []Kind{GetTimeUTC, ParseTime, TimeOffset}

// String returns the wire name of the tool.
func (k Kind) String() string {
	switch k {
	case GetTimeUTC:
		return GetTimeUTCName
	case ParseTime:
		return ParseTimeName
	case TimeOffset:
		return TimeOffsetName
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a wire name to its Kind. Matching is exact.
func ParseKind(name string) (Kind, error) {
	switch name {
	case GetTimeUTCName:
		return GetTimeUTC, nil
	case ParseTimeName:
		return ParseTime, nil
	case TimeOffsetName:
		return TimeOffset, nil
	default:
		return 0, ErrUnknownCommand
	}
}
