package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// PublisherCtx pipes newline-delimited records from its input to the exchange and exits
// once the input is exhausted and the offline buffer drained.
type PublisherCtx struct {
	deps *Dependencies

	shutdownChannel chan os.Signal
	input           io.Reader
	inputDone       chan struct{}

	backgroundActorCtx      context.Context
	backgroundActorStopFunc context.CancelFunc
}

func NewPublisher(opt ...PublisherOption) *PublisherCtx {
	pCtx := &PublisherCtx{
		shutdownChannel: make(chan os.Signal, 1),
		input:           os.Stdin,
		inputDone:       make(chan struct{}),
	}

	for i := range opt {
		opt[i](pCtx)
	}

	return pCtx
}

func (c *PublisherCtx) Run() {
	c.build()
	c.start()
	c.monitorConfigChanges()
	c.shutdownHook()
	c.shutdown()
}

func (c *PublisherCtx) build() {
	c.backgroundActorCtx, c.backgroundActorStopFunc = context.WithCancel(context.Background())

	deps, err := initializeDependencies(c.backgroundActorCtx, WithRecordPump(c.input))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	c.deps = deps
}

func (c *PublisherCtx) start() {
	c.deps.connectInBackground(c.backgroundActorCtx)
	c.deps.startBackgroundProcessor(c.backgroundActorCtx, "buffer_monitor", c.deps.Workers.BufferMonitor)

	go func() {
		defer close(c.inputDone)

		c.deps.logger.Info().Str("routing_key", c.deps.cfg.Publisher.RoutingKey).Msg("starting record publisher")

		if err := c.deps.Workers.RecordPump.Start(c.backgroundActorCtx); err != nil && !errors.Is(err, context.Canceled) {
			c.deps.logger.Error().Err(err).Msg("record pump failed")
		}
	}()
}

func (c *PublisherCtx) shutdownHook() {
	signal.Notify(c.shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
}

func (c *PublisherCtx) monitorConfigChanges() {
	watchConfigChanges(c.backgroundActorCtx, c.deps)
}

func (c *PublisherCtx) shutdown() {
	// Waits for one of the following shutdown conditions to happen.
	select {
	case <-c.inputDone:
		c.deps.logger.Info().Msg("input exhausted")
	case <-c.backgroundActorCtx.Done():
	case <-c.shutdownChannel:
		defer close(c.shutdownChannel)

		c.deps.logger.Info().Msg("received shutdown signal")
	}

	c.cleanup()

	// Cancel context that underlying processes would start cleanup
	c.backgroundActorStopFunc()

	c.deps.logger.Info().Msg("record publisher stopped")
}

// cleanup drains the buffer while the connection is still being retried, then closes.
func (c *PublisherCtx) cleanup() {
	c.deps.logger.Info().Msg("cleaning up resources...")

	ctx, cancel := context.WithTimeout(context.Background(), c.deps.cfg.Publisher.DrainTimeout+c.deps.cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	c.deps.closeMessaging(ctx)
	c.deps.closeTelemetry(ctx)

	c.deps.logger.Info().Msg("cleanup completed")
}
