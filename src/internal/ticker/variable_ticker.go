package ticker

import (
	"context"
	"sync"
	"time"
)

type Delay interface {
	Reset()
	Step() time.Duration
}

// VariableTicker ticks after each delay step. Unlike time.Ticker, a tick is
// not dropped when the receiver is slow; the next delay starts once the tick
// has been received.
type VariableTicker struct {
	C chan struct{}

	delay           Delay
	originalContext context.Context

	mu     sync.Mutex
	cancel func()
}

func New(delay Delay, opts ...Option) *VariableTicker {
	t := &VariableTicker{
		C:               make(chan struct{}),
		delay:           delay,
		originalContext: context.Background(),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.start()

	return t
}

type Option func(*VariableTicker)

func WithContext(ctx context.Context) Option {
	return func(t *VariableTicker) {
		t.originalContext = ctx
	}
}

// Reset returns the delay to its base and restarts the countdown.
func (t *VariableTicker) Reset() {
	t.delay.Reset()
	t.start()
}

func (t *VariableTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancel()
}

func (t *VariableTicker) start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	var ctx context.Context
	ctx, t.cancel = context.WithCancel(t.originalContext)
	go t.tick(ctx)
}

func (t *VariableTicker) tick(ctx context.Context) {
	for {
		timer := time.NewTimer(t.delay.Step())

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		select {
		case <-ctx.Done():
			return
		case t.C <- struct{}{}:
		}
	}
}
