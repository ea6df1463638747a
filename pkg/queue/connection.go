package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConnectionState is the lifecycle state of a ConnectionManager.
type ConnectionState int

const (
	StateIdle ConnectionState = iota
	StateConnecting
	StateConnected
	// StateReconnecting is connecting again after the broker connection was lost.
	StateReconnecting
	// StateShuttingDown covers an explicit Disconnect. Close notifications seen here never trigger a reconnect.
	StateShuttingDown
)

func (s ConnectionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	case StateShuttingDown:
		return "shutting_down"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ConnectionListener is notified about connection availability, in registration order.
// Callbacks run synchronously on the notifying goroutine. They may call Connection, State
// and Connect, but must not call Disconnect or Subscribe.
type ConnectionListener interface {
	OnConnected(conn Connection)
	OnDisconnected(err error)
}

// ConnectionSource is what the publisher and worker need from a ConnectionManager.
type ConnectionSource interface {
	Subscribe(listener ConnectionListener) (unsubscribe func())
	Connection() Connection
}

type connectAttempt struct {
	done   chan struct{}
	cancel context.CancelFunc
	conn   Connection
	err    error
}

// ConnectionManager owns the single broker connection and keeps it alive.
type ConnectionManager struct {
	url        string
	amqpConfig amqp.Config
	dial       Dialer
	retry      *RetryExecutor
	logger     Logger
	observer   Observer

	mu      sync.Mutex
	state   ConnectionState
	conn    Connection
	pending *connectAttempt

	listenersMu sync.Mutex
	listeners   []*listenerEntry

	// emitMu serializes notifications so they reach listeners in transition order.
	// It is always taken before mu and never while mu is held.
	emitMu sync.Mutex
}

type listenerEntry struct {
	listener ConnectionListener
}

// NewConnectionManager validates cfg and returns an idle manager. Nothing is dialed until Connect.
func NewConnectionManager(cfg Config, opts ...ConnectionOption) (*ConnectionManager, error) {
	target := BuildURL(cfg)
	if target == "" {
		return nil, newConfigurationError("connection manager", "url", "a broker URL or host is required")
	}

	if _, err := amqp.ParseURI(target); err != nil {
		return nil, newConfigurationError("connection manager", "url", err.Error())
	}

	options := defaultConnectionOptions()
	for _, opt := range opts {
		opt(&options)
	}

	if options.connectionName != "" {
		cfg.ConnectionName = options.connectionName
	}

	m := &ConnectionManager{
		url:        target,
		amqpConfig: amqpConfig(cfg, options.heartbeat, options.timeout),
		dial:       options.dialer,
		logger:     options.logger,
		observer:   options.observer,
		state:      StateIdle,
	}

	m.retry = NewRetryExecutor(m.instrumentPolicy(options.retry))

	return m, nil
}

// Connect brings the manager to StateConnected. Concurrent callers share one attempt,
// and ctx only bounds how long this caller waits for it.
func (m *ConnectionManager) Connect(ctx context.Context) (Connection, error) {
	m.mu.Lock()

	switch m.state {
	case StateConnected:
		conn := m.conn
		m.mu.Unlock()

		return conn, nil
	case StateShuttingDown:
		m.mu.Unlock()

		return nil, ErrShuttingDown
	}

	attempt := m.pending
	if attempt == nil {
		attempt = m.beginAttemptLocked(StateConnecting)
	}

	m.mu.Unlock()

	select {
	case <-attempt.done:
		return attempt.conn, attempt.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Disconnect tears the connection down without triggering a reconnect and stops any
// in-flight attempt. Listeners get OnDisconnected(nil) when a connection was live.
func (m *ConnectionManager) Disconnect(_ context.Context) error {
	m.mu.Lock()

	if m.state == StateIdle || m.state == StateShuttingDown {
		m.mu.Unlock()
		m.logger.Debug().Msg("disconnect requested while not connected")

		return nil
	}

	m.setStateLocked(StateShuttingDown)

	conn := m.conn
	m.conn = nil

	if m.pending != nil {
		m.pending.cancel()
		m.pending = nil
	}

	m.mu.Unlock()

	var closeErr error
	if conn != nil {
		if err := conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			closeErr = &ConnectionError{Op: "close", URL: SanitizeURL(m.url), Err: err, Timestamp: time.Now()}
		}
	}

	m.emitMu.Lock()

	m.mu.Lock()
	m.setStateLocked(StateIdle)
	m.mu.Unlock()

	if conn != nil {
		m.notifyDisconnected(nil)
	}

	m.emitMu.Unlock()

	m.logger.Info().Str("url", SanitizeURL(m.url)).Msg("disconnected from broker")

	return closeErr
}

// Subscribe registers listener. A listener added while connected is told so immediately.
func (m *ConnectionManager) Subscribe(listener ConnectionListener) func() {
	entry := &listenerEntry{listener: listener}

	m.emitMu.Lock()
	defer m.emitMu.Unlock()

	m.mu.Lock()

	var conn Connection
	if m.state == StateConnected {
		conn = m.conn
	}

	m.mu.Unlock()

	m.listenersMu.Lock()
	m.listeners = append(m.listeners, entry)
	m.listenersMu.Unlock()

	if conn != nil {
		listener.OnConnected(conn)
	}

	return func() {
		m.listenersMu.Lock()
		defer m.listenersMu.Unlock()

		for i, e := range m.listeners {
			if e == entry {
				m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)

				return
			}
		}
	}
}

// Connection returns the live connection, or nil when the manager is not connected.
func (m *ConnectionManager) Connection() Connection {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateConnected {
		return nil
	}

	return m.conn
}

func (m *ConnectionManager) State() ConnectionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

func (m *ConnectionManager) IsConnected() bool {
	return m.State() == StateConnected
}

func (m *ConnectionManager) beginAttemptLocked(state ConnectionState) *connectAttempt {
	ctx, cancel := context.WithCancel(context.Background())

	attempt := &connectAttempt{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	m.pending = attempt
	m.setStateLocked(state)

	go m.establish(ctx, attempt)

	return attempt
}

func (m *ConnectionManager) establish(ctx context.Context, attempt *connectAttempt) {
	defer attempt.cancel()

	conn, err := Retry(ctx, m.retry, func(context.Context) (Connection, error) {
		conn, err := m.dial(m.url, m.amqpConfig)
		if err != nil {
			return nil, &ConnectionError{Op: "dial", URL: SanitizeURL(m.url), Err: err, Timestamp: time.Now()}
		}

		return conn, nil
	})

	m.emitMu.Lock()
	m.mu.Lock()

	// Disconnect dropped this attempt while it was running.
	if m.pending != attempt {
		m.mu.Unlock()
		m.emitMu.Unlock()

		if conn != nil {
			_ = conn.Close()
		}

		attempt.err = ErrShuttingDown
		close(attempt.done)

		return
	}

	m.pending = nil

	if err != nil {
		m.setStateLocked(StateIdle)
		m.mu.Unlock()
		m.emitMu.Unlock()

		m.logger.Error().Err(err).Str("url", SanitizeURL(m.url)).Msg("unable to connect to broker")

		attempt.err = err
		close(attempt.done)

		return
	}

	m.conn = conn
	m.setStateLocked(StateConnected)

	closeCh := conn.NotifyClose(make(chan *amqp.Error, 1))
	blockedCh := conn.NotifyBlocked(make(chan amqp.Blocking, 1))

	m.mu.Unlock()

	m.logger.Info().Str("url", SanitizeURL(m.url)).Msg("connected to broker")
	m.notifyConnected(conn)

	m.emitMu.Unlock()

	attempt.conn = conn
	close(attempt.done)

	go m.watch(conn, closeCh, blockedCh)
}

func (m *ConnectionManager) watch(conn Connection, closeCh <-chan *amqp.Error, blockedCh <-chan amqp.Blocking) {
	for {
		select {
		case blocking, ok := <-blockedCh:
			if !ok {
				blockedCh = nil

				continue
			}

			if blocking.Active {
				m.logger.Warn().Str("reason", blocking.Reason).Msg("broker blocked the connection")
			} else {
				m.logger.Info().Msg("broker unblocked the connection")
			}

		case amqpErr, ok := <-closeCh:
			var cause error = ErrNotConnected
			if ok && amqpErr != nil {
				cause = amqpErr
			}

			m.handleClose(conn, cause)

			return
		}
	}
}

func (m *ConnectionManager) handleClose(conn Connection, cause error) {
	m.emitMu.Lock()
	m.mu.Lock()

	if m.conn != conn || m.state != StateConnected {
		m.mu.Unlock()
		m.emitMu.Unlock()

		return
	}

	m.conn = nil
	m.beginAttemptLocked(StateReconnecting)
	m.mu.Unlock()

	lost := &ConnectionError{Op: "lost", URL: SanitizeURL(m.url), Err: cause, Timestamp: time.Now()}

	m.logger.Warn().Err(cause).Msg("broker connection lost, reconnecting")
	m.notifyDisconnected(lost)

	m.emitMu.Unlock()
}

func (m *ConnectionManager) setStateLocked(state ConnectionState) {
	if m.state == state {
		return
	}

	from := m.state
	m.state = state
	m.observer.ConnectionStateChanged(from, state)
}

func (m *ConnectionManager) snapshotListeners() []*listenerEntry {
	m.listenersMu.Lock()
	defer m.listenersMu.Unlock()

	return append([]*listenerEntry(nil), m.listeners...)
}

func (m *ConnectionManager) notifyConnected(conn Connection) {
	for _, entry := range m.snapshotListeners() {
		entry.listener.OnConnected(conn)
	}
}

func (m *ConnectionManager) notifyDisconnected(err error) {
	for _, entry := range m.snapshotListeners() {
		entry.listener.OnDisconnected(err)
	}
}

func (m *ConnectionManager) instrumentPolicy(policy RetryPolicy) RetryPolicy {
	onError := policy.OnError
	policy.OnError = func(err error, attempt int, nextRetryAt time.Time) {
		m.observer.ConnectAttempted(attempt, err)
		m.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("retry_in", time.Until(nextRetryAt)).
			Msg("broker connection attempt failed")

		if onError != nil {
			onError(err, attempt, nextRetryAt)
		}
	}

	onSuccess := policy.OnSuccess
	policy.OnSuccess = func(attempt int) {
		m.observer.ConnectAttempted(attempt, nil)

		if onSuccess != nil {
			onSuccess(attempt)
		}
	}

	onExhausted := policy.OnExhausted
	policy.OnExhausted = func(attempt int) {
		m.logger.Error().Int("attempt", attempt).Msg("broker connection retries exhausted")

		if onExhausted != nil {
			onExhausted(attempt)
		}
	}

	return policy
}
