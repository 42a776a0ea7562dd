package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerClient guards a Client with a circuit breaker. After the configured
// number of consecutive failures every call fails fast with
// gobreaker.ErrOpenState until the cooldown passes.
type BreakerClient struct {
	inner Client
	cb    *gobreaker.CircuitBreaker
}

// NewBreakerClient wraps inner. failures must be at least 1.
//
// A call cancelled by its caller does not count against the model. A call
// that runs out of time (context.DeadlineExceeded, including the per-call
// Config.Timeout) does: a model that keeps timing out is unhealthy.
func NewBreakerClient(inner Client, name string, failures uint32, cooldown time.Duration, logger *zap.Logger) *BreakerClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	st := gobreaker.Settings{
		Name:         name,
		Timeout:      cooldown,
		IsSuccessful: callerCancelledOrOK,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("llm circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
	return &BreakerClient{inner: inner, cb: gobreaker.NewCircuitBreaker(st)}
}

func callerCancelledOrOK(err error) bool {
	return err == nil || errors.Is(err, context.Canceled)
}

// State reports the breaker state.
func (b *BreakerClient) State() gobreaker.State {
	return b.cb.State()
}

// GenerateContent implements Client.
func (b *BreakerClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier, opts ...Option) (string, error) {
	return b.call(func() (string, error) {
		return b.inner.GenerateContent(ctx, prompt, tier, opts...)
	})
}

// GenerateJSON implements Client.
func (b *BreakerClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier, opts ...Option) (string, error) {
	return b.call(func() (string, error) {
		return b.inner.GenerateJSON(ctx, prompt, tier, opts...)
	})
}

// Close implements Client.
func (b *BreakerClient) Close() error {
	return b.inner.Close()
}

func (b *BreakerClient) call(fn func() (string, error)) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}
