package runtime

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// SubscriberCtx consumes the configured queue until it is told to stop.
type SubscriberCtx struct {
	deps *Dependencies

	shutdownChannel chan os.Signal

	ctx        context.Context
	cancelFunc context.CancelFunc
}

func NewSubscriber(opt ...SubscriberOption) *SubscriberCtx {
	sCtx := &SubscriberCtx{
		shutdownChannel: make(chan os.Signal, 1),
	}

	for i := range opt {
		opt[i](sCtx)
	}

	return sCtx
}

func (c *SubscriberCtx) Run() {
	c.build()
	c.start()
	c.monitorConfigChanges()
	c.shutdownHook()
	c.shutdown()
}

func (c *SubscriberCtx) build() {
	c.ctx, c.cancelFunc = context.WithCancel(context.Background())

	deps, err := initializeDependencies(c.ctx, WithSubscriber())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	c.deps = deps
}

// start only connects: the worker is subscribed to the connection manager and
// resumes consuming on every connection it reports.
func (c *SubscriberCtx) start() {
	c.deps.logger.Info().
		Str("queue", c.deps.cfg.Worker.Queue).
		Str("binding_key", c.deps.cfg.Worker.BindingKey).
		Msg("starting message worker")

	c.deps.connectInBackground(c.ctx)
}

func (c *SubscriberCtx) shutdownHook() {
	signal.Notify(c.shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
}

func (c *SubscriberCtx) monitorConfigChanges() {
	watchConfigChanges(c.ctx, c.deps)
}

func (c *SubscriberCtx) shutdown() {
	select {
	case <-c.ctx.Done():
	case <-c.shutdownChannel:
		defer close(c.shutdownChannel)
	}

	c.deps.logger.Info().Msg("received shutdown signal")

	c.cancelFunc()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.deps.cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	go forceExitAfter(shutdownCtx, c.deps)

	c.deps.logger.Info().Msg("cleaning up resources...")
	c.deps.closeMessaging(shutdownCtx)
	c.deps.closeTelemetry(shutdownCtx)

	c.deps.logger.Info().Msg("message worker stopped")
}
