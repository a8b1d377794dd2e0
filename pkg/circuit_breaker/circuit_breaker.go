package circuit_breaker

import (
	"errors"
	"sync"
	"time"
)

type State uint8

const (
	Closed State = iota + 1
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	}
	return "unknown"
}

var ErrOpen = errors.New("circuit breaker is open")

type Config struct {
	// Window is how many recent calls are tracked.
	Window int `envconfig:"CB_WINDOW" default:"10"`
	// FailureRatio of the window that trips the breaker.
	FailureRatio float64 `envconfig:"CB_FAILURE_RATIO" default:"0.5"`
	// Cooldown before a tripped breaker lets a probe through.
	Cooldown time.Duration `envconfig:"CB_COOLDOWN" default:"30s"`
	// Probes is the number of consecutive half-open successes needed to close.
	Probes int `envconfig:"CB_PROBES" default:"2"`
}

type CircuitBreaker interface {
	Call(fn func() error) error
	State() State
	Reset()
}

type breaker struct {
	cfg Config
	now func() time.Time

	mu       sync.Mutex
	state    State
	openedAt time.Time
	// ring of recent outcomes, true means failed
	outcomes  []bool
	pos       int
	successes int
}

func New(cfg Config) CircuitBreaker {
	if cfg.Window <= 0 {
		cfg.Window = 10
	}
	if cfg.Probes <= 0 {
		cfg.Probes = 1
	}
	return &breaker{
		cfg:      cfg,
		now:      time.Now,
		state:    Closed,
		outcomes: make([]bool, cfg.Window),
	}
}

func (b *breaker) Call(fn func() error) error {
	if err := b.before(); err != nil {
		return err
	}
	err := fn()
	b.after(err != nil)
	return err
}

func (b *breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != Open {
		return nil
	}
	if b.now().Sub(b.openedAt) < b.cfg.Cooldown {
		return ErrOpen
	}
	b.state = HalfOpen
	b.successes = 0
	return nil
}

func (b *breaker) after(failed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.outcomes[b.pos] = failed
	b.pos = (b.pos + 1) % len(b.outcomes)

	switch b.state {
	case HalfOpen:
		if failed {
			b.trip()
			return
		}
		b.successes++
		if b.successes >= b.cfg.Probes {
			b.reset()
		}
	case Closed:
		if b.failureRatio() >= b.cfg.FailureRatio {
			b.trip()
		}
	}
}

func (b *breaker) failureRatio() float64 {
	fails := 0
	for _, failed := range b.outcomes {
		if failed {
			fails++
		}
	}
	return float64(fails) / float64(len(b.outcomes))
}

func (b *breaker) trip() {
	b.state = Open
	b.successes = 0
	b.openedAt = b.now()
}

func (b *breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

func (b *breaker) reset() {
	for i := range b.outcomes {
		b.outcomes[i] = false
	}
	b.pos = 0
	b.successes = 0
	b.state = Closed
}
