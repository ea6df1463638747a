package decorator

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/architeacher/svc-amqp-relay/internal/shared/decorator"

type commandTracingDecorator[C any, R any] struct {
	base   CommandHandler[C, R]
	tracer trace.Tracer
}

func (d commandTracingDecorator[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	ctx, span := d.tracer.Start(ctx, "command."+generateActionName(cmd))
	defer span.End()

	result, err := d.base.Handle(ctx, cmd)
	finishSpan(span, err)

	return result, err
}

type queryTracingDecorator[Q any, R any] struct {
	base   QueryHandler[Q, R]
	tracer trace.Tracer
}

func (d queryTracingDecorator[Q, R]) Execute(ctx context.Context, query Q) (R, error) {
	ctx, span := d.tracer.Start(ctx, "query."+generateActionName(query))
	defer span.End()

	result, err := d.base.Execute(ctx, query)
	finishSpan(span, err)

	return result, err
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return
	}

	span.SetStatus(codes.Ok, "")
}
