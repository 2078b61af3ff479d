package timetools

import "errors"

var (
	// ErrUnknownCommand is returned when the requested tool name is not known.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMissingArgument is returned when a required argument is absent or has
	// the wrong JSON type.
	ErrMissingArgument = errors.New("missing or invalid argument")
	// ErrMalformedTimestamp is returned when time_rfc2822 is not RFC 2822.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	// ErrOutOfRange is returned when a computed instant overflows int64 seconds
	// or cannot be rendered with a four-digit year.
	ErrOutOfRange = errors.New("timestamp out of range")
)
