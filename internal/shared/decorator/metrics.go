package decorator

import (
	"context"
	"fmt"
	"time"
)

type commandMetricsDecorator[C any, R any] struct {
	base   CommandHandler[C, R]
	client MetricsClient
}

func (d commandMetricsDecorator[C, R]) Handle(ctx context.Context, cmd C) (result R, err error) {
	start := time.Now()
	actionName := generateActionName(cmd)

	defer func() {
		record(d.client, "commands", actionName, time.Since(start), err)
	}()

	return d.base.Handle(ctx, cmd)
}

type queryMetricsDecorator[Q any, R any] struct {
	base   QueryHandler[Q, R]
	client MetricsClient
}

func (d queryMetricsDecorator[Q, R]) Execute(ctx context.Context, query Q) (result R, err error) {
	start := time.Now()
	actionName := generateActionName(query)

	defer func() {
		record(d.client, "queries", actionName, time.Since(start), err)
	}()

	return d.base.Execute(ctx, query)
}

func record(client MetricsClient, kind, actionName string, elapsed time.Duration, err error) {
	if client == nil {
		return
	}

	client.Inc(fmt.Sprintf("%s.%s.duration", kind, actionName), int(elapsed.Milliseconds()))

	if err == nil {
		client.Inc(fmt.Sprintf("%s.%s.success", kind, actionName), 1)

		return
	}

	client.Inc(fmt.Sprintf("%s.%s.failure", kind, actionName), 1)
}
