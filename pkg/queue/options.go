package queue

import (
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/trace"
)

type connectionOptions struct {
	timeout        time.Duration
	heartbeat      time.Duration
	connectionName string
	logger         Logger
	observer       Observer
	retry          RetryPolicy
	dialer         Dialer
}

type ConnectionOption func(options *connectionOptions)

// WithLogger sets the logger used by the connection manager.
func WithLogger(l Logger) ConnectionOption {
	return func(o *connectionOptions) {
		o.logger = l
	}
}

// WithConnectionTimeout sets the TCP dial timeout of every attempt.
func WithConnectionTimeout(timeout time.Duration) ConnectionOption {
	return func(o *connectionOptions) {
		o.timeout = timeout
	}
}

// WithHeartbeat sets the AMQP heartbeat interval negotiated with the broker.
func WithHeartbeat(interval time.Duration) ConnectionOption {
	return func(o *connectionOptions) {
		o.heartbeat = interval
	}
}

// WithRetryPolicy overrides the policy used for connection establishment.
func WithRetryPolicy(policy RetryPolicy) ConnectionOption {
	return func(o *connectionOptions) {
		o.retry = policy
	}
}

// WithDialer replaces the amqp091 dialer.
func WithDialer(dialer Dialer) ConnectionOption {
	return func(o *connectionOptions) {
		o.dialer = dialer
	}
}

// WithConnectionName overrides Config.ConnectionName.
func WithConnectionName(name string) ConnectionOption {
	return func(o *connectionOptions) {
		o.connectionName = name
	}
}

func WithObserver(observer Observer) ConnectionOption {
	return func(o *connectionOptions) {
		if observer != nil {
			o.observer = observer
		}
	}
}

func defaultConnectionOptions() connectionOptions {
	return connectionOptions{
		timeout:   defaultConnectionTimeout,
		heartbeat: defaultHeartbeat,
		logger:    noopLogger{},
		observer:  noopObserver{},
		retry:     DefaultRetryPolicy(),
		dialer:    DialAMQP,
	}
}

// publisherOptions configure a NewPublisher call.
type publisherOptions struct {
	timeout     time.Duration
	bufferLimit int
	logger      Logger
	observer    Observer
	tracer      trace.TracerProvider
	breaker     *gobreaker.CircuitBreaker
	restartBase time.Duration
	restartMax  time.Duration
}

type PublisherOption func(options *publisherOptions)

const (
	publishingTimeout  = 3 * time.Second
	defaultBufferLimit = 10000

	defaultRestartBase = 500 * time.Millisecond
	defaultRestartMax  = 30 * time.Second
)

// WithPublishingTimeout sets the timeout used when handing one message to the transport.
func WithPublishingTimeout(d time.Duration) PublisherOption {
	return func(o *publisherOptions) {
		o.timeout = d
	}
}

// WithBufferLimit bounds the offline buffer. Zero or less means unbounded.
func WithBufferLimit(limit int) PublisherOption {
	return func(o *publisherOptions) {
		o.bufferLimit = limit
	}
}

func WithPublisherLogger(l Logger) PublisherOption {
	return func(o *publisherOptions) {
		o.logger = l
	}
}

func WithPublisherObserver(observer Observer) PublisherOption {
	return func(o *publisherOptions) {
		if observer != nil {
			o.observer = observer
		}
	}
}

func WithPublisherTracerProvider(tp trace.TracerProvider) PublisherOption {
	return func(o *publisherOptions) {
		o.tracer = tp
	}
}

// WithChannelBreaker guards channel re-creation while the connection stays up.
func WithChannelBreaker(cb *gobreaker.CircuitBreaker) PublisherOption {
	return func(o *publisherOptions) {
		o.breaker = cb
	}
}

// WithRestartBackoff bounds the delay between attempts to re-open the channel while the
// connection is up. Each failure doubles the delay starting at base, up to max.
func WithRestartBackoff(base, maxDelay time.Duration) PublisherOption {
	return func(o *publisherOptions) {
		o.restartBase = base
		o.restartMax = maxDelay
	}
}

func defaultPublisherOptions() publisherOptions {
	return publisherOptions{
		timeout:     publishingTimeout,
		bufferLimit: defaultBufferLimit,
		logger:      noopLogger{},
		observer:    noopObserver{},
		restartBase: defaultRestartBase,
		restartMax:  defaultRestartMax,
	}
}

type workerOptions struct {
	logger      Logger
	observer    Observer
	tracer      trace.TracerProvider
	maxRequeues int
}

type WorkerOption func(*workerOptions)

func WithWorkerLogger(l Logger) WorkerOption {
	return func(o *workerOptions) {
		o.logger = l
	}
}

func WithWorkerObserver(observer Observer) WorkerOption {
	return func(o *workerOptions) {
		if observer != nil {
			o.observer = observer
		}
	}
}

func WithWorkerTracerProvider(tp trace.TracerProvider) WorkerOption {
	return func(o *workerOptions) {
		o.tracer = tp
	}
}

// WithMaxRequeues bounds how many times MsgController.Requeue republishes one message.
func WithMaxRequeues(n int) WorkerOption {
	return func(o *workerOptions) {
		o.maxRequeues = n
	}
}

func defaultWorkerOptions() workerOptions {
	return workerOptions{
		logger:      noopLogger{},
		observer:    noopObserver{},
		maxRequeues: defaultMaxRetryCount,
	}
}

// PublishOptions carries per-message AMQP properties.
type PublishOptions struct {
	ContentType   string
	MessageID     string
	CorrelationID string
	ReplyTo       string
	Expiration    string
	Priority      uint8
	Persistent    bool
	Mandatory     bool
	Headers       map[string]any
}

type PublishOption func(*PublishOptions)

func WithContentType(contentType string) PublishOption {
	return func(o *PublishOptions) {
		o.ContentType = contentType
	}
}

func WithMessageID(id string) PublishOption {
	return func(o *PublishOptions) {
		o.MessageID = id
	}
}

func WithCorrelationID(id string) PublishOption {
	return func(o *PublishOptions) {
		o.CorrelationID = id
	}
}

func WithReplyTo(queue string) PublishOption {
	return func(o *PublishOptions) {
		o.ReplyTo = queue
	}
}

// WithExpiration sets the per-message TTL.
func WithExpiration(ttl time.Duration) PublishOption {
	return func(o *PublishOptions) {
		o.Expiration = formatExpiration(ttl)
	}
}

func WithPriority(priority uint8) PublishOption {
	return func(o *PublishOptions) {
		o.Priority = priority
	}
}

// WithTransient publishes with delivery mode 1. Messages are persistent by default.
func WithTransient() PublishOption {
	return func(o *PublishOptions) {
		o.Persistent = false
	}
}

func WithMandatory() PublishOption {
	return func(o *PublishOptions) {
		o.Mandatory = true
	}
}

func WithHeader(key string, value any) PublishOption {
	return func(o *PublishOptions) {
		if o.Headers == nil {
			o.Headers = make(map[string]any)
		}

		o.Headers[key] = value
	}
}

func defaultPublishOptions() PublishOptions {
	return PublishOptions{
		ContentType: ContentTypeOctetStream,
		Persistent:  true,
	}
}
