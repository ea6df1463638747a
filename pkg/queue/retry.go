package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/architeacher/svc-amqp-relay/internal/shared/backoff"
)

// RetryPolicy configures a RetryExecutor. Zero values select the defaults:
// unbounded attempts, a one second base delay, 20% jitter and no delay cap.
type RetryPolicy struct {
	// MaxAttempts bounds the number of attempts. Zero or less retries forever.
	MaxAttempts int
	BaseDelay   time.Duration
	// MaxDelay caps the computed delay. Zero leaves growth unbounded.
	MaxDelay time.Duration
	// Jitter is the upper bound of the random fraction added to every delay. Negative disables it.
	Jitter float64

	// OnError runs after every failed attempt, including the last one of a finite budget.
	OnError func(err error, attempt int, nextRetryAt time.Time)
	// OnSuccess runs once with the number of the attempt that succeeded.
	OnSuccess func(attempt int)
	// OnExhausted runs once when MaxAttempts failures have been observed.
	OnExhausted func(attempt int)
}

// DefaultRetryPolicy never gives up.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		BaseDelay: backoff.DefaultBaseDelay,
		Jitter:    backoff.DefaultJitter,
	}
}

// RetryExecutor runs an operation with exponential backoff until it succeeds,
// the budget is exhausted or the context is cancelled.
type RetryExecutor struct {
	policy   RetryPolicy
	strategy backoff.Strategy

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func NewRetryExecutor(policy RetryPolicy) *RetryExecutor {
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = backoff.DefaultBaseDelay
	}

	switch {
	case policy.Jitter == 0:
		policy.Jitter = backoff.DefaultJitter
	case policy.Jitter < 0:
		policy.Jitter = 0
	}

	return &RetryExecutor{
		policy: policy,
		strategy: backoff.NewExponentialStrategy(backoff.Config{
			BaseDelay:  policy.BaseDelay,
			Multiplier: backoff.DefaultMultiplier,
			Jitter:     policy.Jitter,
			MaxDelay:   policy.MaxDelay,
		}),
		now:   time.Now,
		sleep: sleepContext,
	}
}

// Policy returns the policy the executor was built with.
func (e *RetryExecutor) Policy() RetryPolicy {
	return e.policy
}

// Run calls op until it returns nil. See Retry for the semantics.
func (e *RetryExecutor) Run(ctx context.Context, op func(ctx context.Context) error) error {
	_, err := Retry(ctx, e, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})

	return err
}

// Retry calls op until it succeeds. After failed attempt n the executor waits
// BaseDelay*2^(n-1) plus jitter. A finite budget ends with an *ExhaustedError
// wrapping the last failure; a cancelled ctx ends with an error wrapping ctx.Err().
func Retry[T any](ctx context.Context, e *RetryExecutor, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("retry aborted before attempt %d: %w", attempt, err)
		}

		result, err := op(ctx)
		if err == nil {
			if e.policy.OnSuccess != nil {
				e.policy.OnSuccess(attempt)
			}

			return result, nil
		}

		delay := e.strategy.Backoff(attempt - 1)

		if e.policy.OnError != nil {
			e.policy.OnError(err, attempt, e.now().Add(delay))
		}

		if e.policy.MaxAttempts > 0 && attempt >= e.policy.MaxAttempts {
			if e.policy.OnExhausted != nil {
				e.policy.OnExhausted(attempt)
			}

			return zero, &ExhaustedError{Attempts: attempt, Err: err}
		}

		if err := e.sleep(ctx, delay); err != nil {
			return zero, fmt.Errorf("retry aborted after attempt %d: %w", attempt, err)
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
