package config

import (
	"time"
)

// Compile time variables are set by -ldflags.
var (
	ServiceVersion string
	CommitSHA      string
	APIVersion     string
)

const (
	LogLevelNone = "none"

	ExporterGRPC   = "grpc"
	ExporterStdout = "stdout"
)

type (
	ServiceConfig struct {
		AppConfig             AppConfig                   `json:"app_config"`
		Logging               LoggingConfig               `json:"logging"`
		Telemetry             Telemetry                   `json:"telemetry"`
		SecretStorage         SecretStorageConfig         `json:"secret_storage"`
		HTTPServer            HTTPServerConfig            `json:"http_server"`
		Queue                 QueueConfig                 `json:"queue"`
		Retry                 RetryConfig                 `json:"retry"`
		Publisher             PublisherConfig             `json:"publisher"`
		Worker                WorkerConfig                `json:"worker"`
		CircuitBreaker        CircuitBreakerConfig        `json:"circuit_breaker"`
		ThrottledRateLimiting ThrottledRateLimitingConfig `json:"throttled_rate_limiting"`
		BrokerProbe           BrokerProbeConfig           `json:"broker_probe"`
	}

	AppConfig struct {
		ServiceName    string `envconfig:"APP_SERVICE_NAME" default:"svc-amqp-relay" json:"service_name"`
		ServiceVersion string `envconfig:"APP_SERVICE_VERSION" default:"0.0.0" json:"service_version"`
		CommitSHA      string `envconfig:"APP_COMMIT_SHA" default:"unknown" json:"commit_sha"`
		APIVersion     string `envconfig:"APP_API_VERSION" default:"v1" json:"api_version"`
		Env            string `envconfig:"APP_ENVIRONMENT" default:"unknown" json:"env"`
	}

	LoggingConfig struct {
		Level string `envconfig:"LOGGING_LEVEL" default:"info" json:"level"`
		// AMQPLevel is the legacy variable of the connection layer. It wins over Level when set.
		AMQPLevel string          `envconfig:"AMQP_LOG_LEVEL" json:"amqp_level,omitempty"`
		Format    string          `envconfig:"LOGGING_FORMAT" default:"json" json:"format"`
		AccessLog AccessLogConfig `json:"access_log"`
	}

	AccessLogConfig struct {
		Enabled            bool `envconfig:"ACCESS_LOG_ENABLED" default:"true" json:"enabled"`
		LogHealthChecks    bool `envconfig:"ACCESS_LOG_HEALTH_CHECKS" default:"false" json:"log_health_checks"`
		IncludeQueryParams bool `envconfig:"ACCESS_LOG_INCLUDE_QUERY_PARAMS" default:"true" json:"include_query_params"`
	}

	Telemetry struct {
		ExporterType string `envconfig:"OTEL_EXPORTER" default:"grpc" json:"exporter_type"`

		OtelGRPCHost       string `envconfig:"OTEL_HOST" json:"otel_grpc_host"`
		OtelGRPCPort       string `envconfig:"OTEL_PORT" default:"4317" json:"otel_grpc_port"`
		OtelProductCluster string `envconfig:"OTEL_PRODUCT_CLUSTER" json:"otel_product_cluster"`

		Metrics Metrics `json:"metrics"`
		Traces  Traces  `json:"traces"`
	}

	Metrics struct {
		Enabled bool `envconfig:"METRICS_ENABLED" default:"false" json:"enabled"`
	}

	Traces struct {
		Enabled      bool    `envconfig:"TRACES_ENABLED" default:"false" json:"enabled"`
		SamplerRatio float64 `envconfig:"TRACES_SAMPLER_RATIO" default:"1" json:"sampler_ratio"`
	}

	SecretStorageConfig struct {
		Enabled       bool          `envconfig:"VAULT_ENABLED" default:"false" json:"enabled"`
		Address       string        `envconfig:"VAULT_ADDRESS" default:"http://vault:8200" json:"address"`
		Token         string        `envconfig:"VAULT_TOKEN" json:"token,omitempty"`
		RoleID        string        `envconfig:"VAULT_ROLE_ID" json:"role_id,omitempty"`
		SecretID      string        `envconfig:"VAULT_SECRET_ID" json:"secret_id,omitempty"`
		AuthMethod    string        `envconfig:"VAULT_AUTH_METHOD" default:"token" json:"auth_method"`
		MountPath     string        `envconfig:"VAULT_MOUNT_PATH" default:"svc-amqp-relay" json:"mount_path"`
		Namespace     string        `envconfig:"VAULT_NAMESPACE" json:"namespace,omitempty"`
		Timeout       time.Duration `envconfig:"VAULT_TIMEOUT" default:"30s" json:"timeout"`
		MaxRetries    int           `envconfig:"VAULT_MAX_RETRIES" default:"3" json:"max_retries"`
		TLSSkipVerify bool          `envconfig:"VAULT_TLS_SKIP_VERIFY" default:"false" json:"tls_skip_verify"`
		PollInterval  time.Duration `envconfig:"VAULT_POLL_INTERVAL" default:"24h" json:"poll_interval"`
	}

	HTTPServerConfig struct {
		Port            int           `envconfig:"HTTP_SERVER_PORT" default:"8088" json:"port"`
		Host            string        `envconfig:"HTTP_SERVER_HOST" default:"0.0.0.0" json:"host"`
		ReadTimeout     time.Duration `envconfig:"HTTP_SERVER_READ_TIMEOUT" default:"30s" json:"read_timeout"`
		WriteTimeout    time.Duration `envconfig:"HTTP_SERVER_WRITE_TIMEOUT" default:"30s" json:"write_timeout"`
		IdleTimeout     time.Duration `envconfig:"HTTP_SERVER_IDLE_TIMEOUT" default:"120s" json:"idle_timeout"`
		ShutdownTimeout time.Duration `envconfig:"HTTP_SERVER_SHUTDOWN_TIMEOUT" default:"30s" json:"shutdown_timeout"`
		MaxBodyBytes    int64         `envconfig:"HTTP_SERVER_MAX_BODY_BYTES" default:"1048576" json:"max_body_bytes"`
	}

	// QueueConfig describes the broker endpoint. URL wins over the individual parts.
	QueueConfig struct {
		URL            string        `envconfig:"RABBITMQ_URL" json:"url,omitempty"`
		Host           string        `envconfig:"RABBITMQ_HOST" default:"rabbitmq" json:"host"`
		Port           int           `envconfig:"RABBITMQ_PORT" default:"5672" json:"port"`
		Username       string        `envconfig:"RABBITMQ_USERNAME" default:"guest" json:"username"`
		Password       string        `envconfig:"RABBITMQ_PASSWORD" default:"guest" json:"password,omitempty"`
		VirtualHost    string        `envconfig:"RABBITMQ_VIRTUAL_HOST" default:"/" json:"virtual_host"`
		ConnectionName string        `envconfig:"RABBITMQ_CONNECTION_NAME" json:"connection_name"`
		ConnectTimeout time.Duration `envconfig:"RABBITMQ_CONNECT_TIMEOUT" default:"10s" json:"connect_timeout"`
		Heartbeat      time.Duration `envconfig:"RABBITMQ_HEARTBEAT" default:"10s" json:"heartbeat"`
	}

	RetryConfig struct {
		MaxAttempts int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"0" json:"max_attempts"`
		BaseDelay   time.Duration `envconfig:"RETRY_BASE_DELAY" default:"1s" json:"base_delay"`
		MaxDelay    time.Duration `envconfig:"RETRY_MAX_DELAY" default:"0s" json:"max_delay"`
		Jitter      float64       `envconfig:"RETRY_JITTER" default:"0.2" json:"jitter"`
	}

	PublisherConfig struct {
		ExchangeName       string        `envconfig:"PUBLISHER_EXCHANGE_NAME" default:"relay" json:"exchange_name"`
		ExchangeKind       string        `envconfig:"PUBLISHER_EXCHANGE_KIND" default:"topic" json:"exchange_kind"`
		ExchangeDurable    bool          `envconfig:"PUBLISHER_EXCHANGE_DURABLE" default:"true" json:"exchange_durable"`
		ExchangeAutoDelete bool          `envconfig:"PUBLISHER_EXCHANGE_AUTO_DELETE" default:"false" json:"exchange_auto_delete"`
		RoutingKey         string        `envconfig:"PUBLISHER_ROUTING_KEY" default:"relay.message" json:"routing_key"`
		BufferLimit        int           `envconfig:"PUBLISHER_BUFFER_LIMIT" default:"10000" json:"buffer_limit"`
		PublishTimeout     time.Duration `envconfig:"PUBLISHER_PUBLISH_TIMEOUT" default:"3s" json:"publish_timeout"`
		MaxPayloadBytes    int           `envconfig:"PUBLISHER_MAX_PAYLOAD_BYTES" default:"1048576" json:"max_payload_bytes"`
		MonitorInterval    time.Duration `envconfig:"PUBLISHER_MONITOR_INTERVAL" default:"5s" json:"monitor_interval"`
		BufferWarnPercent  int           `envconfig:"PUBLISHER_BUFFER_WARN_PERCENT" default:"80" json:"buffer_warn_percent"`
		DrainTimeout       time.Duration `envconfig:"PUBLISHER_DRAIN_TIMEOUT" default:"30s" json:"drain_timeout"`
	}

	WorkerConfig struct {
		Queue              string `envconfig:"WORKER_QUEUE" default:"relay.messages" json:"queue"`
		Durable            bool   `envconfig:"WORKER_QUEUE_DURABLE" default:"true" json:"durable"`
		AutoDelete         bool   `envconfig:"WORKER_QUEUE_AUTO_DELETE" default:"false" json:"auto_delete"`
		Exclusive          bool   `envconfig:"WORKER_QUEUE_EXCLUSIVE" default:"false" json:"exclusive"`
		ExchangeName       string `envconfig:"WORKER_EXCHANGE_NAME" default:"relay" json:"exchange_name"`
		ExchangeKind       string `envconfig:"WORKER_EXCHANGE_KIND" default:"topic" json:"exchange_kind"`
		ExchangeDurable    bool   `envconfig:"WORKER_EXCHANGE_DURABLE" default:"true" json:"exchange_durable"`
		ExchangeAutoDelete bool   `envconfig:"WORKER_EXCHANGE_AUTO_DELETE" default:"false" json:"exchange_auto_delete"`
		BindingKey         string `envconfig:"WORKER_BINDING_KEY" default:"relay.#" json:"binding_key"`
		PrefetchCount      int    `envconfig:"WORKER_PREFETCH_COUNT" default:"10" json:"prefetch_count"`
		ConsumerTag        string `envconfig:"WORKER_CONSUMER_TAG" json:"consumer_tag"`
		MaxRequeues        int    `envconfig:"WORKER_MAX_REQUEUES" default:"10" json:"max_requeues"`
	}

	CircuitBreakerConfig struct {
		MaxRequests uint32        `envconfig:"CIRCUIT_BREAKER_MAX_REQUESTS" default:"1" json:"max_requests"`
		Interval    time.Duration `envconfig:"CIRCUIT_BREAKER_INTERVAL" default:"0s" json:"interval"`
		Timeout     time.Duration `envconfig:"CIRCUIT_BREAKER_TIMEOUT" default:"5s" json:"timeout"`
		MaxFailures uint32        `envconfig:"CIRCUIT_BREAKER_MAX_FAILURES" default:"5" json:"max_failures"`
	}

	ThrottledRateLimitingConfig struct {
		Enabled           bool     `envconfig:"RATE_LIMITING_ENABLED" default:"true" json:"enabled"`
		RequestsPerSecond int      `envconfig:"RATE_LIMITING_REQUESTS_PER_SECOND" default:"100" json:"requests_per_second"`
		BurstSize         int      `envconfig:"RATE_LIMITING_BURST_SIZE" default:"200" json:"burst_size"`
		EnableIPLimiting  bool     `envconfig:"RATE_LIMITING_ENABLE_IP_LIMITING" default:"true" json:"enable_ip_limiting"`
		MaxKeys           int      `envconfig:"RATE_LIMITING_MAX_KEYS" default:"1000" json:"max_keys"`
		SkipPaths         []string `envconfig:"RATE_LIMITING_SKIP_PATHS" default:"/v1/health,/metrics" json:"skip_paths"`
	}

	// BrokerProbeConfig points at the RabbitMQ management API used by the health endpoint.
	BrokerProbeConfig struct {
		Enabled        bool          `envconfig:"BROKER_PROBE_ENABLED" default:"false" json:"enabled"`
		BaseURL        string        `envconfig:"BROKER_PROBE_BASE_URL" default:"http://rabbitmq:15672" json:"base_url"`
		Timeout        time.Duration `envconfig:"BROKER_PROBE_TIMEOUT" default:"2s" json:"timeout"`
		Retries        int           `envconfig:"BROKER_PROBE_RETRIES" default:"1" json:"retries"`
		BreakerTimeout time.Duration `envconfig:"BROKER_PROBE_BREAKER_TIMEOUT" default:"30s" json:"breaker_timeout"`
		MaxFailures    uint32        `envconfig:"BROKER_PROBE_MAX_FAILURES" default:"3" json:"max_failures"`
	}
)

// EffectiveLevel resolves the log level, letting AMQP_LOG_LEVEL override LOGGING_LEVEL.
func (c LoggingConfig) EffectiveLevel() string {
	if c.AMQPLevel != "" {
		return c.AMQPLevel
	}

	return c.Level
}
