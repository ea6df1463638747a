//go:generate go tool github.com/maxbrunsfeld/counterfeiter/v6 -generate

package ports

import (
	"context"

	"github.com/architeacher/svc-amqp-relay/pkg/queue"
)

//counterfeiter:generate -o ../mocks/message_handler.go . MessageHandler

// MessageHandler settles one delivery through ctrl. It is adapted to queue.MessageHandler by the runtime.
type MessageHandler interface {
	ProcessMessage(ctx context.Context, msg queue.Message, ctrl *queue.MsgController) error
}
