package stdin

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/architeacher/svc-amqp-relay/internal/domain"
	"github.com/architeacher/svc-amqp-relay/internal/infrastructure"
	"github.com/architeacher/svc-amqp-relay/internal/ports"
	"github.com/architeacher/svc-amqp-relay/internal/usecases"
	"github.com/architeacher/svc-amqp-relay/internal/usecases/commands"
)

const defaultMaxRecordBytes = 1 << 20

var _ ports.BackgroundProcessor = (*RecordPump)(nil)

type (
	// RecordPump publishes every non-empty line of its input as one message.
	RecordPump struct {
		app            *usecases.PublisherApplication
		input          io.Reader
		routingKey     string
		maxRecordBytes int
		logger         infrastructure.Logger
	}

	record struct {
		payload []byte
		// size is the length of an oversized line whose payload was discarded.
		size int
	}
)

func NewRecordPump(
	app *usecases.PublisherApplication,
	input io.Reader,
	routingKey string,
	maxRecordBytes int,
	logger infrastructure.Logger,
) *RecordPump {
	if maxRecordBytes <= 0 {
		maxRecordBytes = defaultMaxRecordBytes
	}

	return &RecordPump{
		app:            app,
		input:          input,
		routingKey:     routingKey,
		maxRecordBytes: maxRecordBytes,
		logger:         logger,
	}
}

// Start returns nil once the input is exhausted, or ctx.Err() when cancelled first.
func (p *RecordPump) Start(ctx context.Context) error {
	records := make(chan record)
	readErr := make(chan error, 1)

	go func() {
		defer close(records)

		readErr <- p.read(ctx, records)
	}()

	var published, buffered, rejected int

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case rec, ok := <-records:
			if !ok {
				p.logger.Info().
					Int("published", published).
					Int("buffered", buffered).
					Int("rejected", rejected).
					Msg("input exhausted")

				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read records: %w", err)
				}

				return nil
			}

			if rec.payload == nil {
				rejected++

				p.logger.Warn().Int("size", rec.size).Int("limit", p.maxRecordBytes).Msg("record too large, skipped")

				continue
			}

			result, err := p.app.Commands.PublishMessageHandler.Handle(ctx, commands.PublishMessageCommand{
				Message: domain.OutboundMessage{RoutingKey: p.routingKey, Payload: rec.payload},
			})

			switch {
			case err != nil:
				rejected++

				p.logger.Warn().Err(err).Int("size", len(rec.payload)).Msg("record rejected")
			case result.Accepted:
				published++
			default:
				buffered++
			}
		}
	}
}

// read splits the input on newlines without ever holding more than one record in memory.
func (p *RecordPump) read(ctx context.Context, records chan<- record) error {
	reader := bufio.NewReader(p.input)

	var (
		line []byte
		size int
	)

	for {
		chunk, err := reader.ReadSlice('\n')
		size += len(chunk)

		if size <= p.maxRecordBytes+2 {
			line = append(line, chunk...)
		}

		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 || size > p.maxRecordBytes+2 {
			rec := record{payload: bytes.Clone(trimmed)}
			if size > p.maxRecordBytes+2 {
				rec = record{size: size}
			}

			select {
			case records <- rec:
			case <-ctx.Done():
				return nil
			}
		}

		line, size = line[:0], 0

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}
	}
}
