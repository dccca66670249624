// Package resilience содержит механизмы отказоустойчивости для внешних зависимостей трекера:
// повтор подключения к хранилищу и размыкатель для кэша.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"exercisetracker/pkg/logger"
)

// State - состояние размыкателя.
type State int

// Состояния размыкателя.
const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Константы для логирования.
const (
	LogBreakerStateChange = "circuit breaker state changed"
	LogBreakerReject      = "circuit breaker rejected call"
)

// ErrCircuitOpen возвращается без вызова операции, пока размыкатель открыт.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// BreakerConfig содержит пороги размыкателя.
type BreakerConfig struct {
	// FailureThreshold - ошибок подряд до размыкания.
	FailureThreshold int
	// OpenTimeout - время в открытом состоянии до пробного вызова.
	OpenTimeout time.Duration
	// SuccessThreshold - успешных пробных вызовов до замыкания.
	SuccessThreshold int
}

// DefaultBreakerConfig возвращает настройки по умолчанию.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		OpenTimeout:      10 * time.Second,
		SuccessThreshold: 2,
	}
}

// CircuitBreaker перестает вызывать зависимость после серии ошибок.
type CircuitBreaker struct {
	name   string
	config BreakerConfig
	now    func() time.Time

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	changedAt time.Time
}

// NewCircuitBreaker создает замкнутый размыкатель.
func NewCircuitBreaker(name string, config BreakerConfig) *CircuitBreaker {
	return NewCircuitBreakerWithClock(name, config, time.Now)
}

// NewCircuitBreakerWithClock создает размыкатель с заданными часами.
func NewCircuitBreakerWithClock(name string, config BreakerConfig, now func() time.Time) *CircuitBreaker {
	return &CircuitBreaker{
		name:      name,
		config:    config,
		now:       now,
		state:     StateClosed,
		changedAt: now(),
	}
}

// Execute вызывает fn, если размыкатель пропускает запрос, и учитывает результат.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if !cb.allow(ctx) {
		return ErrCircuitOpen
	}

	err := fn()
	cb.record(ctx, err)
	return err
}

// State возвращает текущее состояние.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) allow(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return true
	}

	if cb.now().Sub(cb.changedAt) < cb.config.OpenTimeout {
		logger.Log(ctx).Debug(ctx, LogBreakerReject, zap.String("circuit_breaker", cb.name))
		return false
	}

	cb.transition(ctx, StateHalfOpen)
	return true
}

func (cb *CircuitBreaker) record(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.successes = 0
		switch cb.state {
		case StateClosed:
			cb.failures++
			if cb.failures >= cb.config.FailureThreshold {
				cb.transition(ctx, StateOpen)
			}
		case StateHalfOpen:
			cb.transition(ctx, StateOpen)
		}
		return
	}

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.transition(ctx, StateClosed)
		}
	}
}

// transition вызывается под cb.mu.
func (cb *CircuitBreaker) transition(ctx context.Context, to State) {
	logger.Log(ctx).Info(ctx, LogBreakerStateChange,
		zap.String("circuit_breaker", cb.name),
		zap.Stringer("from", cb.state),
		zap.Stringer("to", to),
		zap.Int("failures", cb.failures),
	)

	cb.state = to
	cb.changedAt = cb.now()
	cb.failures = 0
	cb.successes = 0
}
