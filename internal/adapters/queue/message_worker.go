package queue

import (
	"context"
	"errors"

	"github.com/architeacher/svc-amqp-relay/internal/domain"
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/ports"
	"github.com/architeacher/svc-amqp-relay/internal/usecases"
	"github.com/architeacher/svc-amqp-relay/internal/usecases/commands"
	"github.com/architeacher/svc-amqp-relay/pkg/queue"
)

// Ensure MessageWorker implements the MessageHandler interface
var _ ports.MessageHandler = (*MessageWorker)(nil)

type MessageWorker struct {
	app    *usecases.SubscriberApplication
	logger infrastructure.Logger
}

func NewMessageWorker(
	app *usecases.SubscriberApplication,
	logger infrastructure.Logger,
) *MessageWorker {
	return &MessageWorker{
		app:    app,
		logger: logger,
	}
}

// ProcessMessage acks handled messages, rejects undecodable ones and requeues the rest.
// A message that used up its requeue budget is rejected as well.
func (w *MessageWorker) ProcessMessage(ctx context.Context, msg queue.Message, ctrl *queue.MsgController) error {
	retryCount, headerErr := msg.RetryCount()
	if headerErr != nil {
		w.logger.Warn().Err(headerErr).Str("message_id", msg.MessageID).Msg("malformed retry count header")
	}

	_, err := w.app.Commands.ProcessMessageHandler.Handle(ctx, commands.ProcessMessageCommand{
		Message: domain.InboundMessage{
			MessageID:     msg.MessageID,
			CorrelationID: msg.CorrelationID,
			RoutingKey:    msg.RoutingKey,
			ContentType:   msg.ContentType,
			Body:          msg.Body,
			Redelivered:   msg.Redelivered,
			RetryCount:    retryCount,
			Timestamp:     msg.Timestamp,
		},
	})

	switch {
	case err == nil:
		return ctrl.Ack(msg)

	case errors.Is(err, domain.ErrUndecodableMessage):
		w.logger.Warn().Err(err).Str("message_id", msg.MessageID).Msg("rejecting undecodable message")

		return ctrl.Reject(msg)
	}

	w.logger.Error().Err(err).Str("message_id", msg.MessageID).Msg("failed to process message")

	// The header cannot be incremented, so the message would never reach its budget.
	if headerErr != nil {
		return ctrl.Reject(msg)
	}

	if requeueErr := ctrl.Requeue(ctx, msg); requeueErr != nil {
		if errors.Is(requeueErr, queue.ErrRetryCountExceeded) {
			w.logger.Warn().Str("message_id", msg.MessageID).Int("retry_count", retryCount).Msg("retry budget exhausted, rejecting message")

			return ctrl.Reject(msg)
		}

		return requeueErr
	}

	return nil
}
