//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package system_stats

import "errors"

func WallClockNanos() (int64, error) {
	return 0, errors.New("realtime clock not available on this platform")
}
