package main

import (
	"github.com/architeacher/svc-amqp-relay/internal/runtime"
)

func main() {
	runtime.NewSubscriber().Run()
}
