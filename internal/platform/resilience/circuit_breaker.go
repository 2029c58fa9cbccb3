// Package resilience protects calls to remote dependencies.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreakerConfig is read from <PREFIX>_CIRCUIT_* variables.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxReq:   1,
	}
}

// Validate names the offending variable so a bad deployment fails at startup.
func (c CircuitBreakerConfig) Validate(prefix string) error {
	if !c.Enabled {
		return nil
	}
	switch {
	case c.FailureThreshold < 1:
		return fmt.Errorf("%s_CIRCUIT_FAILURE_COUNT must be >= 1", prefix)
	case c.OpenTimeout <= 0:
		return fmt.Errorf("%s_CIRCUIT_OPEN_TIMEOUT must be > 0", prefix)
	case c.HalfOpenMaxReq < 1:
		return fmt.Errorf("%s_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}
	return nil
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	d := DefaultCircuitBreakerConfig()
	if c.FailureThreshold < 1 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = d.OpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = d.HalfOpenMaxReq
	}
	return c
}

// CircuitBreaker trips after consecutive failures, rejects calls for
// OpenTimeout, then lets HalfOpenMaxReq requests through. A nil
// *CircuitBreaker runs every call.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	now func() time.Time

	mu        sync.Mutex
	state     CircuitState
	failures  int
	openUntil time.Time
	inflight  int
	passed    int
}

// NewCircuitBreaker returns nil when cfg is disabled. Zero or negative
// limits fall back to the defaults.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if !cfg.Enabled {
		return nil
	}
	return &CircuitBreaker{
		cfg:   cfg.withDefaults(),
		now:   time.Now,
		state: CircuitStateClosed,
	}
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailure
	// The caller gave up; says nothing about the dependency.
	outcomeAbandoned
)

func outcomeOf(ctx context.Context, err error) outcome {
	switch {
	case err == nil:
		return outcomeSuccess
	case ctx.Err() != nil && errors.Is(err, context.Canceled):
		return outcomeAbandoned
	default:
		return outcomeFailure
	}
}

// Execute runs fn if the breaker admits it and records how it went.
func (b *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if b == nil {
		return fn(ctx)
	}
	if err := b.admit(); err != nil {
		return err
	}
	err := fn(ctx)
	b.settle(outcomeOf(ctx, err))
	return err
}

func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance()
	return b.state
}

func (b *CircuitBreaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance()

	switch b.state {
	case CircuitStateOpen:
		return ErrCircuitOpen
	case CircuitStateHalfOpen:
		if b.inflight >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.inflight++
	}
	return nil
}

func (b *CircuitBreaker) settle(o outcome) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateHalfOpen && b.inflight > 0 {
		b.inflight--
	}

	switch o {
	case outcomeSuccess:
		if b.state != CircuitStateHalfOpen {
			b.failures = 0
			return
		}
		b.passed++
		if b.passed >= b.cfg.HalfOpenMaxReq && b.inflight == 0 {
			b.state = CircuitStateClosed
			b.failures, b.passed = 0, 0
		}
	case outcomeFailure:
		switch b.state {
		case CircuitStateClosed:
			b.failures++
			if b.failures >= b.cfg.FailureThreshold {
				b.trip()
			}
		default:
			b.trip()
		}
	}
}

// advance moves an open breaker to half-open once its timeout has passed.
func (b *CircuitBreaker) advance() {
	if b.state == CircuitStateOpen && !b.now().Before(b.openUntil) {
		b.state = CircuitStateHalfOpen
		b.inflight, b.passed = 0, 0
	}
}

func (b *CircuitBreaker) trip() {
	b.state = CircuitStateOpen
	b.openUntil = b.now().Add(b.cfg.OpenTimeout)
	b.inflight, b.passed = 0, 0
}
