package queue

import (
	"net/url"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	defaultHeartbeat         = 10 * time.Second
	defaultConnectionTimeout = 30 * time.Second
	defaultLocale            = "en_US"

	schemeAMQP      = "amqp"
	schemeAMQPS     = "amqps"
	defaultPort     = 5672
	defaultTLSPort  = 5671
	defaultUsername = "guest"
	defaultPassword = "guest"
	defaultVhost    = "/"
)

// Config is used to establish a connection with a RabbitMQ server.
// URL wins when set; otherwise it is assembled from the individual parts and
// unset parts take the amqp091 defaults.
type Config struct {
	URL      string
	Scheme   string
	Username string
	Password string
	Host     string
	Port     int
	Vhost    string

	// ConnectionName is advertised to the broker as the connection_name client property.
	ConnectionName string
}

// BuildURL returns the broker URL described by cfg, or "" when it names no broker.
// A zero port becomes 5672 (5671 for amqps), missing credentials become guest/guest
// and an empty vhost becomes "/".
func BuildURL(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}

	if cfg.Host == "" {
		return ""
	}

	uri := amqp.URI{
		Scheme:   cfg.Scheme,
		Username: cfg.Username,
		Password: cfg.Password,
		Host:     cfg.Host,
		Port:     cfg.Port,
		Vhost:    cfg.Vhost,
	}

	if uri.Scheme == "" {
		uri.Scheme = schemeAMQP
	}

	if uri.Port == 0 {
		uri.Port = defaultPort
		if uri.Scheme == schemeAMQPS {
			uri.Port = defaultTLSPort
		}
	}

	if uri.Username == "" && uri.Password == "" {
		uri.Username, uri.Password = defaultUsername, defaultPassword
	}

	if uri.Vhost == "" {
		uri.Vhost = defaultVhost
	}

	return uri.String()
}

// SanitizeURL strips credentials so the address can be logged.
func SanitizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return "<invalid-url>"
	}

	if parsed.User != nil {
		parsed.User = url.User("***")
	}

	return parsed.String()
}

func amqpConfig(cfg Config, heartbeat, timeout time.Duration) amqp.Config {
	properties := amqp.NewConnectionProperties()
	if cfg.ConnectionName != "" {
		properties.SetClientConnectionName(cfg.ConnectionName)
	}

	return amqp.Config{
		Heartbeat:  heartbeat,
		Locale:     defaultLocale,
		Properties: properties,
		Dial:       amqp.DefaultDial(timeout),
	}
}
