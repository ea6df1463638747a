package runtime

import (
	"io"
	"os"
)

type (
	ServiceOption func(*ServiceCtx)

	PublisherOption func(*PublisherCtx)

	SubscriberOption func(*SubscriberCtx)
)

func WithServiceTermination(ch chan os.Signal) ServiceOption {
	return func(ctx *ServiceCtx) {
		ctx.shutdownChannel = ch
	}
}

func WithWaitingForServer() ServiceOption {
	return func(ctx *ServiceCtx) {
		ctx.serverReady = make(chan struct{})
	}
}

func WithPublisherTermination(ch chan os.Signal) PublisherOption {
	return func(ctx *PublisherCtx) {
		ctx.shutdownChannel = ch
	}
}

// WithPublisherInput replaces stdin as the record source.
func WithPublisherInput(r io.Reader) PublisherOption {
	return func(ctx *PublisherCtx) {
		ctx.input = r
	}
}

func WithSubscriberTermination(ch chan os.Signal) SubscriberOption {
	return func(ctx *SubscriberCtx) {
		ctx.shutdownChannel = ch
	}
}
