package service

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"unicode/utf8"

	"github.com/architeacher/svc-amqp-relay/internal/domain"
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/pkg/queue"
)

var (
	errInvalidJSON = errors.New("body is not valid JSON")
	errInvalidText = errors.New("body is not valid UTF-8")
)

type (
	SubscriberService interface {
		ProcessMessage(ctx context.Context, msg domain.InboundMessage) (*domain.ProcessMessageResult, error)
	}

	subscriberService struct {
		logger infrastructure.Logger
	}
)

func NewSubscriberService(logger infrastructure.Logger) SubscriberService {
	return &subscriberService{
		logger: logger,
	}
}

// ProcessMessage decodes the body and logs it. A body that contradicts its content type
// yields an undecodable message error so the caller can reject it.
func (s *subscriberService) ProcessMessage(_ context.Context, msg domain.InboundMessage) (*domain.ProcessMessageResult, error) {
	if err := checkBody(msg.ContentType, msg.Body); err != nil {
		return nil, domain.NewUndecodableMessageError(msg.MessageID, err)
	}

	decoded := queue.Decode(msg.Body)
	kind := kindOf(decoded)

	s.logger.Info().
		Str("message_id", msg.MessageID).
		Str("correlation_id", msg.CorrelationID).
		Str("routing_key", msg.RoutingKey).
		Str("kind", kind).
		Bool("redelivered", msg.Redelivered).
		Int("retry_count", msg.RetryCount).
		Interface("payload", decoded).
		Msg("message received")

	return &domain.ProcessMessageResult{
		MessageID: msg.MessageID,
		Kind:      kind,
		Decoded:   decoded,
	}, nil
}

func checkBody(contentType string, body []byte) error {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}

	switch mediaType {
	case queue.ContentTypeJSON:
		if !json.Valid(body) {
			return errInvalidJSON
		}
	case "text/plain":
		if !utf8.Valid(body) {
			return errInvalidText
		}
	}

	return nil
}

func kindOf(value any) string {
	switch value.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}
