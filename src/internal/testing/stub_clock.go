package testing

import (
	"sync"
	"time"
)

// StubClock is a ticks.Clock frozen at a fixed instant.
type StubClock struct {
	mu sync.Mutex

	now       time.Time
	wallNanos int64
	wallErr   error
}

func NewStubClock(now time.Time, wallNanos int64) *StubClock {
	return &StubClock{
		now:       now,
		wallNanos: wallNanos,
	}
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *StubClock) WallNanos() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.wallErr != nil {
		return 0, c.wallErr
	}

	return c.wallNanos, nil
}

func (c *StubClock) Set(now time.Time, wallNanos int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = now
	c.wallNanos = wallNanos
}

func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
	c.wallNanos += int64(d)
}

// FailWallClock makes every following WallNanos call return err.
func (c *StubClock) FailWallClock(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.wallErr = err
}
