// Package circuit implements a small consecutive-failure circuit breaker.
// Callers record outcomes; the breaker advises whether to route to the
// primary dependency or a fallback path.
package circuit

import (
	"sync"
	"time"
)

type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// Change reports a state transition caused by a recorded outcome, so callers
// can log transitions exactly once.
type Change struct {
	Opened bool
	Closed bool
}

type Breaker struct {
	mu               sync.Mutex
	name             string
	state            State
	failureThreshold int
	successThreshold int
	openTimeout      time.Duration
	failures         int
	successes        int
	openedAt         time.Time
	lastProbe        time.Time
}

type Option func(*Breaker)

// WithFailureThreshold sets how many consecutive failures open the circuit.
func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

// WithSuccessThreshold sets how many consecutive successes close an open
// circuit again.
func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.successThreshold = n
		}
	}
}

// WithOpenTimeout sets how long an open circuit blocks before letting a
// single probe through.
func WithOpenTimeout(d time.Duration) Option {
	return func(b *Breaker) {
		if d > 0 {
			b.openTimeout = d
		}
	}
}

func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		failureThreshold: 5,
		successThreshold: 1,
		openTimeout:      30 * time.Second,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) IsOpen() bool {
	return b.State() == StateOpen
}

// Allow reports whether a call to the primary should proceed. While open it
// admits one probe per openTimeout window so the circuit can close again.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateClosed {
		return true
	}

	now := time.Now()
	ref := b.openedAt
	if b.lastProbe.After(ref) {
		ref = b.lastProbe
	}
	if now.Sub(ref) >= b.openTimeout {
		b.lastProbe = now
		return true
	}
	return false
}

// RecordFailure notes a failed call. The first return value reports whether
// the caller should use its fallback from now on.
func (b *Breaker) RecordFailure() (useFallback bool, change Change) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.successes = 0
	if b.state == StateOpen {
		return true, Change{}
	}

	b.failures++
	if b.failures >= b.failureThreshold {
		b.state = StateOpen
		b.openedAt = time.Now()
		b.failures = 0
		return true, Change{Opened: true}
	}
	return false, Change{}
}

// RecordSuccess notes a successful call. The first return value reports
// whether the primary is usable again.
func (b *Breaker) RecordSuccess() (usePrimary bool, change Change) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	if b.state == StateClosed {
		return true, Change{}
	}

	b.successes++
	if b.successes >= b.successThreshold {
		b.state = StateClosed
		b.successes = 0
		return true, Change{Closed: true}
	}
	return false, Change{}
}

// Reset force-closes the circuit and clears all counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.successes = 0
}
