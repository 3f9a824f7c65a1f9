package ticks

import (
	"fmt"
	"time"

	"github.com/cloudfoundry/ticks-release/src/pkg/system_stats"
)

// Clock supplies the current instant. Now backs every precision coarser
// than nanoseconds, WallNanos is the OS realtime clock.
type Clock interface {
	Now() time.Time
	WallNanos() (int64, error)
}

type systemClock struct{}

// SystemClock reads time.Now and the kernel realtime clock.
var SystemClock Clock = systemClock{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) WallNanos() (int64, error) {
	return system_stats.WallClockNanos()
}

// Resolve returns the current instant expressed as an integer count of the
// given precision. Unknown precisions resolve as nanoseconds.
func Resolve(clock Clock, precision Precision) (int64, error) {
	switch precision {
	case Hours:
		return roundDiv(clock.Now().Unix(), 3600), nil
	case Minutes:
		return roundDiv(clock.Now().Unix(), 60), nil
	case Seconds:
		return clock.Now().Unix(), nil
	case Milliseconds:
		return roundDiv(clock.Now().UnixNano(), int64(time.Millisecond)), nil
	case Microseconds:
		return clock.Now().UnixNano() / int64(time.Microsecond), nil
	default:
		nanos, err := clock.WallNanos()
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrTimestampUnavailable, err)
		}

		return nanos, nil
	}
}

// roundDiv divides n by d rounding half away from zero.
func roundDiv(n, d int64) int64 {
	if n < 0 {
		return -roundDiv(-n, d)
	}

	return (n + d/2) / d
}
