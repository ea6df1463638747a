package backoff_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/architeacher/svc-amqp-relay/internal/shared/backoff"
)

func TestExponential_Backoff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		retries     int
		config      backoff.Config
		minExpected time.Duration
		maxExpected time.Duration
	}{
		{
			name:        "first failure waits the base delay",
			retries:     0,
			config:      backoff.Config{BaseDelay: time.Second, Multiplier: 2, Jitter: 0.2},
			minExpected: time.Second,
			maxExpected: 1200 * time.Millisecond,
		},
		{
			name:        "second failure doubles",
			retries:     1,
			config:      backoff.Config{BaseDelay: time.Second, Multiplier: 2, Jitter: 0.2},
			minExpected: 2 * time.Second,
			maxExpected: 2400 * time.Millisecond,
		},
		{
			name:        "third failure quadruples",
			retries:     2,
			config:      backoff.Config{BaseDelay: time.Second, Multiplier: 2, Jitter: 0.2},
			minExpected: 4 * time.Second,
			maxExpected: 4800 * time.Millisecond,
		},
		{
			name:        "growth is capped when a max delay is set",
			retries:     10,
			config:      backoff.Config{BaseDelay: time.Second, Multiplier: 2, Jitter: 0.2, MaxDelay: 10 * time.Second},
			minExpected: 10 * time.Second,
			maxExpected: 12 * time.Second,
		},
		{
			name:        "growth is unbounded without a max delay",
			retries:     10,
			config:      backoff.Config{BaseDelay: time.Second, Multiplier: 2},
			minExpected: 1024 * time.Second,
			maxExpected: 1024 * time.Second,
		},
		{
			name:        "zero config falls back to defaults",
			retries:     0,
			config:      backoff.Config{},
			minExpected: time.Second,
			maxExpected: time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			strategy := backoff.NewExponentialStrategy(tt.config)
			duration := strategy.Backoff(tt.retries)

			assert.GreaterOrEqual(t, duration, tt.minExpected)
			assert.LessOrEqual(t, duration, tt.maxExpected)
		})
	}
}

func TestExponential_JitterIsAdditive(t *testing.T) {
	t.Parallel()

	strategy := backoff.NewExponentialStrategy(backoff.Config{
		BaseDelay:  time.Second,
		Multiplier: 2,
		Jitter:     0.2,
	}).WithRand(func() float64 { return 0.5 })

	assert.Equal(t, 1100*time.Millisecond, strategy.Backoff(0))
	assert.Equal(t, 2200*time.Millisecond, strategy.Backoff(1))
}

func TestExponential_HugeRetryCountDoesNotOverflow(t *testing.T) {
	t.Parallel()

	strategy := backoff.NewExponentialStrategy(backoff.Config{BaseDelay: time.Second, Multiplier: 2})

	assert.Positive(t, strategy.Backoff(5000))
}
