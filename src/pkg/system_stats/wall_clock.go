//go:build linux || darwin || freebsd || netbsd || openbsd

package system_stats

import "golang.org/x/sys/unix"

// WallClockNanos reads the realtime clock from the kernel. The Go runtime
// only exposes wall time through time.Time, which is not guaranteed to carry
// the full resolution of the platform clock.
func WallClockNanos() (int64, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_REALTIME, &ts); err != nil {
		return 0, err
	}

	return ts.Nano(), nil
}
