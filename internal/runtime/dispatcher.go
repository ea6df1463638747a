package runtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// ServiceCtx runs the HTTP relay: publishing over HTTP with an offline buffer behind it.
type ServiceCtx struct {
	deps *Dependencies

	shutdownChannel chan os.Signal

	serverCtx      context.Context
	serverStopFunc context.CancelFunc

	serverReady chan struct{}
}

func New(opt ...ServiceOption) *ServiceCtx {
	sCtx := &ServiceCtx{
		shutdownChannel: make(chan os.Signal, 1),
	}

	for i := range opt {
		opt[i](sCtx)
	}

	return sCtx
}

func (c *ServiceCtx) Run() {
	c.build()
	c.startService()
	c.monitorConfigChanges()
	c.shutdownHook()
	c.shutdown()
}

// build initializes the service components
func (c *ServiceCtx) build() {
	c.serverCtx, c.serverStopFunc = context.WithCancel(context.Background())

	deps, err := initializeDependencies(c.serverCtx, WithHTTPServer())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	c.deps = deps
}

// startService connects to the broker in the background and starts the HTTP server.
// The server accepts messages right away; they are buffered until the broker is reachable.
func (c *ServiceCtx) startService() {
	c.deps.connectInBackground(c.serverCtx)
	c.deps.startBackgroundProcessor(c.serverCtx, "buffer_monitor", c.deps.Workers.BufferMonitor)

	go func() {
		c.deps.logger.Info().
			Str("address", c.deps.Infra.HTTPServer.Addr).
			Msg("service starting up")

		if c.serverReady != nil {
			c.serverReady <- struct{}{}
		}

		if err := c.deps.Infra.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.deps.logger.Error().Err(err).Msg("unable to start http server")
			c.serverStopFunc()
		}
	}()
}

func (c *ServiceCtx) shutdownHook() {
	signal.Notify(c.shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
}

func (c *ServiceCtx) monitorConfigChanges() {
	watchConfigChanges(c.serverCtx, c.deps)
}

func (c *ServiceCtx) shutdown() {
	// Waits for one of the following shutdown conditions to happen.
	select {
	case <-c.serverCtx.Done():
	case <-c.shutdownChannel:
		defer close(c.shutdownChannel)
	}

	c.deps.logger.Info().Msg("received shutdown signal")

	// Cancel context that underlying processes would start cleanup.
	c.serverStopFunc()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.deps.cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	go forceExitAfter(shutdownCtx, c.deps)

	c.cleanup(shutdownCtx)

	c.deps.logger.Info().Msg("relay service shutdown completed")
}

// WaitForServer blocks until the http server is running.
// If you want to be notified when the server is running,
// make sure you instantiate your server with WithWaitingForServer.
//
// Example:
//
//	srv := runtime.New(WithWaitingForServer())
//	go func() {
//		srv.Run()
//	}()
//
//	srv.WaitForServer()
func (c *ServiceCtx) WaitForServer() {
	if c.serverReady != nil {
		<-c.serverReady
		close(c.serverReady)
	}
}

// cleanup stops ingress first so nothing lands in the buffer while it drains.
func (c *ServiceCtx) cleanup(shutdownCtx context.Context) {
	c.deps.logger.Info().Msg("cleaning up resources...")

	if err := c.deps.Infra.HTTPServer.Shutdown(shutdownCtx); err != nil {
		c.deps.logger.Error().Err(err).Msg("unable to gracefully shutdown http server")
	}

	c.deps.closeMessaging(shutdownCtx)
	c.deps.closeTelemetry(shutdownCtx)

	c.deps.logger.Info().Msg("cleanup completed")
}

func watchConfigChanges(ctx context.Context, deps *Dependencies) {
	reloadErrors := deps.configLoader.WatchConfigSignals(ctx)

	go func() {
		for err := range reloadErrors {
			if err != nil {
				deps.logger.Error().Err(err).Msg("failed to reload config")

				continue
			}

			deps.logger.Info().Msg("config reloaded successfully")
		}

		deps.logger.Info().Msg("stopping config monitor")
	}()
}

func forceExitAfter(shutdownCtx context.Context, deps *Dependencies) {
	<-shutdownCtx.Done()

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		deps.logger.Error().Msg("graceful shutdown timed out.. forcing exit.")
		os.Exit(1)
	}
}
