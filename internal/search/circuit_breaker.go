package search

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrCircuitOpen is returned while mirror writes are suspended
var ErrCircuitOpen = errors.New("search: circuit open, mirror writes suspended")

// CircuitBreaker suspends mirror writes after repeated Meilisearch failures.
// The next reindex repairs whatever was skipped.
type CircuitBreaker struct {
	failureThreshold int
	resetTimeout     time.Duration
	now              func() time.Time

	consecutiveFailures int
	totalFailures       int
	isOpen              bool
	openedAt            time.Time

	mutex sync.Mutex
}

// BreakerStatus is a snapshot of the breaker state
type BreakerStatus struct {
	Open                bool `json:"open"`
	ConsecutiveFailures int  `json:"consecutive_failures"`
	TotalFailures       int  `json:"total_failures"`
}

// NewCircuitBreaker creates a new circuit breaker
func NewCircuitBreaker(failureThreshold int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		now:              time.Now,
	}
}

// RecordSuccess closes the breaker
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.consecutiveFailures = 0
	cb.isOpen = false
}

// RecordFailure counts a failed call and opens the breaker at the threshold
func (cb *CircuitBreaker) RecordFailure() {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	cb.consecutiveFailures++
	cb.totalFailures++

	if !cb.isOpen && cb.consecutiveFailures >= cb.failureThreshold {
		cb.isOpen = true
		cb.openedAt = cb.now()
		slog.Warn("search: circuit breaker open",
			"consecutive_failures", cb.consecutiveFailures,
			"retry_after", cb.resetTimeout,
		)
	}
}

// CanProceed checks if requests are allowed. After the reset timeout one trial call goes through.
func (cb *CircuitBreaker) CanProceed() bool {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if !cb.isOpen {
		return true
	}

	if cb.now().Sub(cb.openedAt) > cb.resetTimeout {
		slog.Info("search: circuit breaker half-open", "after", cb.resetTimeout)
		// A failed trial re-opens immediately
		cb.isOpen = false
		cb.consecutiveFailures = cb.failureThreshold - 1
		return true
	}

	return false
}

// GetStatus returns current circuit breaker status
func (cb *CircuitBreaker) GetStatus() BreakerStatus {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return BreakerStatus{
		Open:                cb.isOpen,
		ConsecutiveFailures: cb.consecutiveFailures,
		TotalFailures:       cb.totalFailures,
	}
}

// guard runs fn unless the breaker is open, recording its outcome
func (cb *CircuitBreaker) guard(fn func() error) error {
	if !cb.CanProceed() {
		return ErrCircuitOpen
	}
	if err := fn(); err != nil {
		cb.RecordFailure()
		return err
	}
	cb.RecordSuccess()
	return nil
}
