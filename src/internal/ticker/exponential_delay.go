package ticker

import (
	"math"
	"sync"
	"time"
)

type Config struct {
	BaseDelay  time.Duration
	Multiplier float64
	MaxDelay   time.Duration
}

func (cfg *Config) Validate() {
	if cfg.BaseDelay < 0 {
		panic("BaseDelay must be non-negative")
	}
	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = 100 * time.Millisecond
	}

	if cfg.Multiplier < 0 {
		panic("Multiplier must be non-negative")
	}
	if cfg.Multiplier == 0 {
		cfg.Multiplier = 2
	}

	if cfg.MaxDelay < 0 {
		panic("MaxDelay must be non-negative")
	}
}

// ExponentialDelay grows by Multiplier on every step until MaxDelay. A zero
// MaxDelay means no cap.
type ExponentialDelay struct {
	duration time.Duration

	baseDelay  time.Duration
	maxDelay   time.Duration
	multiplier float64

	mu sync.Mutex
}

func NewExponentialDelay(cfg *Config) *ExponentialDelay {
	cfg.Validate()

	return &ExponentialDelay{
		duration:   cfg.BaseDelay,
		baseDelay:  cfg.BaseDelay,
		maxDelay:   cfg.MaxDelay,
		multiplier: cfg.Multiplier,
	}
}

func (d *ExponentialDelay) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.duration = d.baseDelay
}

// Step returns the current delay and advances to the next one.
func (d *ExponentialDelay) Step() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	current := d.duration

	next := float64(d.duration.Nanoseconds()) * d.multiplier
	if d.maxDelay != 0 {
		next = math.Min(next, float64(d.maxDelay))
	}
	d.duration = time.Duration(next)

	return current
}
