package backoff

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	DefaultBaseDelay  = time.Second
	DefaultMultiplier = 2.0
	DefaultJitter     = 0.2

	maxDuration = float64(math.MaxInt64)
)

type (
	// Strategy defines the methodology for backing off after a failed attempt.
	Strategy interface {
		// Backoff returns the amount of time to wait before the next attempt given
		// the number of consecutive failures so far, starting at zero.
		Backoff(retries int) time.Duration
	}

	// Config holds the knobs of the exponential algorithm.
	Config struct {
		// BaseDelay is the amount of time to back off after the first failure.
		BaseDelay time.Duration
		// Multiplier is the growth factor applied per failure.
		Multiplier float64
		// Jitter is the upper bound of the random fraction added on top of the delay.
		Jitter float64
		// MaxDelay caps the delay before jitter. Zero leaves growth unbounded.
		MaxDelay time.Duration
	}

	// Exponential implements exponential backoff with additive jitter.
	Exponential struct {
		config Config
		rand   func() float64
	}
)

func NewExponentialStrategy(cfg Config) Exponential {
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}

	if cfg.Multiplier < 1 {
		cfg.Multiplier = DefaultMultiplier
	}

	if cfg.Jitter < 0 {
		cfg.Jitter = 0
	}

	return Exponential{
		config: cfg,
		rand:   rand.Float64,
	}
}

// WithRand returns a copy of the strategy drawing jitter from fn, which must return values in [0, 1).
func (e Exponential) WithRand(fn func() float64) Exponential {
	e.rand = fn

	return e
}

// Backoff computes BaseDelay * Multiplier^retries, caps it at MaxDelay when set,
// then adds a uniform random jitter of up to Jitter times the delay.
func (e Exponential) Backoff(retries int) time.Duration {
	if retries < 0 {
		retries = 0
	}

	delay := float64(e.config.BaseDelay) * math.Pow(e.config.Multiplier, float64(retries))

	if e.config.MaxDelay > 0 && delay > float64(e.config.MaxDelay) {
		delay = float64(e.config.MaxDelay)
	}

	if e.config.Jitter > 0 && e.rand != nil {
		delay += delay * e.config.Jitter * e.rand()
	}

	// float64 to int64 conversion is undefined past the int64 range.
	if delay >= maxDuration || math.IsNaN(delay) {
		return time.Duration(math.MaxInt64)
	}

	return time.Duration(delay)
}
