package timetools

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/mwiater/timetool/internal/rfc2822"
)

// now is the clock used by GetTimeUTC. Tests replace it.
var now = time.Now

// CurrentTime returns the payload for the current instant in UTC.
func CurrentTime() (Payload, error) {
	return payloadFor(now().UTC())
}

// ParseRFC2822 parses s and returns its payload. The input's UTC offset is
// kept in the rendered RFC 2822 string.
func ParseRFC2822(s string) (Payload, error) {
	t, err := rfc2822.Parse(s)
	if err != nil {
		if errors.Is(err, rfc2822.ErrYearRange) {
			return Payload{}, fmt.Errorf("%w: %v", ErrOutOfRange, err)
		}
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedTimestamp, err)
	}
	return payloadFor(t)
}

// Unix seconds bounding the years RFC 2822 can render.
const (
	minUnix = -62167219200 // 0000-01-01T00:00:00Z
	maxUnix = 253402300799 // 9999-12-31T23:59:59Z
)

// Offset returns the payload for timestamp+offset seconds, at UTC.
func Offset(timestamp, offset int64) (Payload, error) {
	if (offset > 0 && timestamp > math.MaxInt64-offset) ||
		(offset < 0 && timestamp < math.MinInt64-offset) {
		return Payload{}, fmt.Errorf("%w: %d%+d overflows int64", ErrOutOfRange, timestamp, offset)
	}
	sum := timestamp + offset
	if sum < minUnix || sum > maxUnix {
		return Payload{}, fmt.Errorf("%w: %d%+d", ErrOutOfRange, timestamp, offset)
	}
	return payloadFor(time.Unix(sum, 0).UTC())
}

// payloadFor renders t as the two-field result shared by every tool.
func payloadFor(t time.Time) (Payload, error) {
	rendered, err := rfc2822.Format(t)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrOutOfRange, err)
	}
	return Payload{
		UTCTime:        strconv.FormatInt(t.Unix(), 10),
		UTCTimeRFC2822: rendered,
	}, nil
}

// textResult wraps a payload as a single text content block.
func textResult(p Payload) (CallResult, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return CallResult{}, fmt.Errorf("error preparing time response: %w", err)
	}
	return CallResult{
		Content: []ContentPart{{Type: ContentTypeText, Text: string(data)}},
		IsError: false,
	}, nil
}
