package ticks

import (
	"fmt"
	"time"
)

// Precision is the unit granularity of a timestamp. The zero value is
// Nanoseconds.
type Precision int

const (
	Nanoseconds Precision = iota
	Microseconds
	Milliseconds
	Seconds
	Minutes
	Hours
)

// Precisions returns every supported precision, finest first.
func Precisions() []Precision {
	return []Precision{
		Nanoseconds,
		Microseconds,
		Milliseconds,
		Seconds,
		Minutes,
		Hours,
	}
}

func (p Precision) String() string {
	switch p {
	case Nanoseconds:
		return "nanoseconds"
	case Microseconds:
		return "microseconds"
	case Milliseconds:
		return "milliseconds"
	case Seconds:
		return "seconds"
	case Minutes:
		return "minutes"
	case Hours:
		return "hours"
	default:
		return fmt.Sprintf("precision(%d)", int(p))
	}
}

// Unit is the duration of one tick at this precision. Unknown values are
// treated as nanoseconds.
func (p Precision) Unit() time.Duration {
	switch p {
	case Microseconds:
		return time.Microsecond
	case Milliseconds:
		return time.Millisecond
	case Seconds:
		return time.Second
	case Minutes:
		return time.Minute
	case Hours:
		return time.Hour
	default:
		return time.Nanosecond
	}
}
