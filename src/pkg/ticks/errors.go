package ticks

import "errors"

var (
	// ErrTimestampUnavailable is returned when the OS realtime clock could
	// not be read for a nanosecond timestamp.
	ErrTimestampUnavailable = errors.New("could not record timestamp with nanosecond precision")

	// ErrUnsupportedPrecision means a Precision has no backend unit mapping.
	ErrUnsupportedPrecision = errors.New("unsupported timestamp precision")
)
