// Command publisher sends every line of stdin to the configured exchange.
package main

import (
	"github.com/architeacher/svc-amqp-relay/internal/runtime"
)

func main() {
	runtime.NewPublisher().Run()
}
