package domain

import "time"

type (
	// OutboundMessage is a relay request to publish one payload.
	OutboundMessage struct {
		RoutingKey    string
		Payload       []byte
		ContentType   string
		MessageID     string
		CorrelationID string
		Headers       map[string]any
		TTL           time.Duration
	}

	// PublishResult tells the caller whether the message went out now or waits in the buffer.
	PublishResult struct {
		MessageID string `json:"message_id"`
		Accepted  bool   `json:"accepted"`
		Buffered  int    `json:"buffered"`
	}

	BufferStatus struct {
		Depth           int    `json:"depth"`
		Limit           int    `json:"limit"`
		Ready           bool   `json:"ready"`
		ConnectionState string `json:"connection_state"`
	}

	// InboundMessage is one delivery as seen by the subscriber service.
	InboundMessage struct {
		MessageID     string
		CorrelationID string
		RoutingKey    string
		ContentType   string
		Body          []byte
		Redelivered   bool
		RetryCount    int
		Timestamp     time.Time
	}

	ProcessMessageResult struct {
		MessageID string
		// Kind is the Go kind of the decoded payload: object, array, string, number, bool or null.
		Kind    string
		Decoded any
	}
)

// Fill reports depth as a percentage of limit. An unbounded buffer is never full.
func (s BufferStatus) Fill() int {
	if s.Limit <= 0 {
		return 0
	}

	return s.Depth * 100 / s.Limit
}
