package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

type BreakerConfig struct {
	FailureThreshold int
	OpenTimeout      time.Duration
	// IsFailure decides which errors count against the dependency. Nil counts
	// every non-nil error except context cancellation.
	IsFailure func(error) bool
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
	}
}

// Breaker stops calling a dependency after consecutive failures and lets a
// single probe through once the open timeout has passed.
type Breaker struct {
	mu sync.Mutex

	threshold   int
	openTimeout time.Duration
	isFailure   func(error) bool

	state    State
	failures int
	openedAt time.Time
	probing  bool
	now      func() time.Time
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	defaults := DefaultBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = countsAsFailure
	}

	return &Breaker{
		threshold:   cfg.FailureThreshold,
		openTimeout: cfg.OpenTimeout,
		isFailure:   cfg.IsFailure,
		state:       StateClosed,
		now:         time.Now,
	}
}

// Do runs fn unless the breaker is open. A nil Breaker always runs fn.
func (b *Breaker) Do(ctx context.Context, fn func(context.Context) error) error {
	if b == nil {
		return fn(ctx)
	}
	if err := b.acquire(); err != nil {
		return err
	}

	err := fn(ctx)
	b.record(err)
	return err
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.openTimeout {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) acquire() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.now().Sub(b.openedAt) < b.openTimeout {
			return ErrCircuitOpen
		}
		b.state = StateHalfOpen
		b.probing = true
		return nil
	case StateHalfOpen:
		if b.probing {
			return ErrCircuitOpen
		}
		b.probing = true
		return nil
	default:
		return nil
	}
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	failed := err != nil && b.isFailure(err)
	if b.state == StateHalfOpen {
		b.probing = false
		if failed {
			b.open()
			return
		}
		b.state = StateClosed
		b.failures = 0
		return
	}

	if !failed {
		b.failures = 0
		return
	}
	b.failures++
	if b.failures >= b.threshold {
		b.open()
	}
}

func (b *Breaker) open() {
	b.state = StateOpen
	b.openedAt = b.now()
	b.failures = 0
	b.probing = false
}

func countsAsFailure(err error) bool {
	return !errors.Is(err, context.Canceled)
}
