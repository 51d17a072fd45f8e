package intent

import (
	"sync"
	"time"
)

// breakerState is the circuit breaker state for the AI provider.
type breakerState int

const (
	breakerClosed   breakerState = iota // requests flow through
	breakerOpen                         // provider skipped, fallback runs immediately
	breakerHalfOpen                     // one probe allowed to test recovery
)

func (s breakerState) String() string {
	switch s {
	case breakerClosed:
		return "closed"
	case breakerOpen:
		return "open"
	case breakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// providerBreaker keeps a flapping AI provider from stalling every utterance
// on a timeout. After enough consecutive failures the circuit opens and the
// keyword fallback answers immediately until the recovery window passes.
type providerBreaker struct {
	mu sync.Mutex

	failureThreshold int
	recoveryTimeout  time.Duration

	state      breakerState
	failures   int
	lastChange time.Time
}

func newProviderBreaker(failureThreshold int, recoveryTimeout time.Duration) *providerBreaker {
	if failureThreshold <= 0 {
		failureThreshold = 3
	}
	if recoveryTimeout <= 0 {
		recoveryTimeout = 30 * time.Second
	}
	return &providerBreaker{
		failureThreshold: failureThreshold,
		recoveryTimeout:  recoveryTimeout,
		state:            breakerClosed,
		lastChange:       time.Now(),
	}
}

// allow reports whether a provider request should be attempted.
func (b *providerBreaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case breakerClosed:
		return true
	case breakerOpen:
		if time.Since(b.lastChange) >= b.recoveryTimeout {
			b.transition(breakerHalfOpen)
			return true
		}
		return false
	case breakerHalfOpen:
		return true
	default:
		return false
	}
}

func (b *providerBreaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	if b.state != breakerClosed {
		b.transition(breakerClosed)
	}
}

func (b *providerBreaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	switch b.state {
	case breakerClosed:
		if b.failures >= b.failureThreshold {
			b.transition(breakerOpen)
		}
	case breakerHalfOpen:
		// The probe failed, reopen.
		b.transition(breakerOpen)
	}
}

// transition must be called with the lock held.
func (b *providerBreaker) transition(next breakerState) {
	if b.state == next {
		return
	}
	b.state = next
	b.lastChange = time.Now()
	if next == breakerClosed {
		b.failures = 0
	}
}
