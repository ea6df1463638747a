package infrastructure

import (
	"strconv"

	"go.opentelemetry.io/otel/attribute"
)

const (
	httpMethodKey     = "http.method"
	httpPathKey       = "http.path"
	httpStatusCodeKey = "http.status_code"
	statusKey         = "status"
	exchangeKey       = "messaging.destination.name"
	queueKey          = "messaging.source.name"
	outcomeKey        = "outcome"
	stateFromKey      = "state.from"
	stateToKey        = "state.to"
	commandKey        = "command"

	statusSuccess = "success"
	statusError   = "error"

	defaultExchangeLabel = "(default)"
)

func HTTPMethodAttr(method string) attribute.KeyValue {
	return attribute.String(httpMethodKey, method)
}

func HTTPPathAttr(path string) attribute.KeyValue {
	return attribute.String(httpPathKey, path)
}

func HTTPStatusCodeAttr(code int) attribute.KeyValue {
	return attribute.String(httpStatusCodeKey, strconv.Itoa(code))
}

func StatusAttr(status string) attribute.KeyValue {
	return attribute.String(statusKey, status)
}

// ExchangeAttr labels the default exchange explicitly since an empty label is easy to miss.
func ExchangeAttr(exchange string) attribute.KeyValue {
	if exchange == "" {
		exchange = defaultExchangeLabel
	}

	return attribute.String(exchangeKey, exchange)
}

func QueueAttr(queue string) attribute.KeyValue {
	return attribute.String(queueKey, queue)
}

func OutcomeAttr(outcome string) attribute.KeyValue {
	return attribute.String(outcomeKey, outcome)
}

func StateFromAttr(state string) attribute.KeyValue {
	return attribute.String(stateFromKey, state)
}

func StateToAttr(state string) attribute.KeyValue {
	return attribute.String(stateToKey, state)
}

func CommandAttr(name string) attribute.KeyValue {
	return attribute.String(commandKey, name)
}
