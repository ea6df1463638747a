package service

import (
	"context"
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/architeacher/svc-amqp-relay/internal/config"
	"github.com/architeacher/svc-amqp-relay/internal/domain"
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/ports"
	"github.com/architeacher/svc-amqp-relay/pkg/queue"
)

// AMQP short strings cap routing keys at 255 bytes.
const maxRoutingKeyLength = 255

type (
	PublisherService interface {
		PublishMessage(ctx context.Context, msg domain.OutboundMessage) (*domain.PublishResult, error)
		FetchBufferStatus(ctx context.Context) (*domain.BufferStatus, error)
	}

	publisherService struct {
		publisher  ports.MessagePublisher
		connection ports.ConnectionStatus
		cfg        config.PublisherConfig
		logger     infrastructure.Logger
	}
)

func NewPublisherService(
	publisher ports.MessagePublisher,
	connection ports.ConnectionStatus,
	cfg config.PublisherConfig,
	logger infrastructure.Logger,
) PublisherService {
	return publisherService{
		publisher:  publisher,
		connection: connection,
		cfg:        cfg,
		logger:     logger,
	}
}

// PublishMessage validates msg and hands it to the publisher. A message that could not
// go out right away is buffered, which is still a successful outcome for the caller.
func (s publisherService) PublishMessage(ctx context.Context, msg domain.OutboundMessage) (*domain.PublishResult, error) {
	if msg.RoutingKey == "" {
		msg.RoutingKey = s.cfg.RoutingKey
	}

	if err := validateRoutingKey(msg.RoutingKey); err != nil {
		return nil, err
	}

	if len(msg.Payload) == 0 {
		return nil, domain.NewEmptyPayloadError()
	}

	if s.cfg.MaxPayloadBytes > 0 && len(msg.Payload) > s.cfg.MaxPayloadBytes {
		return nil, domain.NewPayloadTooLargeError(len(msg.Payload), s.cfg.MaxPayloadBytes)
	}

	if msg.MessageID == "" {
		msg.MessageID = uuid.NewString()
	}

	if msg.ContentType == "" {
		msg.ContentType = detectContentType(msg.Payload)
	}

	accepted := s.publisher.Publish(ctx, msg.RoutingKey, msg.Payload, publishOptions(msg)...)
	buffered := s.publisher.Buffered()

	s.logger.Debug().
		Str("message_id", msg.MessageID).
		Str("routing_key", msg.RoutingKey).
		Bool("accepted", accepted).
		Int("buffered", buffered).
		Msg("message handed to publisher")

	return &domain.PublishResult{
		MessageID: msg.MessageID,
		Accepted:  accepted,
		Buffered:  buffered,
	}, nil
}

func (s publisherService) FetchBufferStatus(_ context.Context) (*domain.BufferStatus, error) {
	return &domain.BufferStatus{
		Depth:           s.publisher.Buffered(),
		Limit:           s.cfg.BufferLimit,
		Ready:           s.publisher.Ready(),
		ConnectionState: s.connection.State().String(),
	}, nil
}

func publishOptions(msg domain.OutboundMessage) []queue.PublishOption {
	opts := []queue.PublishOption{
		queue.WithMessageID(msg.MessageID),
		queue.WithContentType(msg.ContentType),
	}

	if msg.CorrelationID != "" {
		opts = append(opts, queue.WithCorrelationID(msg.CorrelationID))
	}

	if msg.TTL > 0 {
		opts = append(opts, queue.WithExpiration(msg.TTL))
	}

	for key, value := range msg.Headers {
		opts = append(opts, queue.WithHeader(key, value))
	}

	return opts
}

func validateRoutingKey(key string) error {
	switch {
	case len(key) > maxRoutingKeyLength:
		return domain.NewInvalidRoutingKeyError(key, "longer than 255 bytes")
	case !utf8.ValidString(key):
		return domain.NewInvalidRoutingKeyError(key, "not valid UTF-8")
	case strings.IndexFunc(key, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0:
		return domain.NewInvalidRoutingKeyError(key, "contains whitespace or control characters")
	}

	return nil
}

func detectContentType(payload []byte) string {
	switch {
	case json.Valid(payload):
		return queue.ContentTypeJSON
	case utf8.Valid(payload):
		return queue.ContentTypeText
	default:
		return queue.ContentTypeOctetStream
	}
}
