// Package decorator wraps CQRS handlers with logging, tracing and metrics.
package decorator

import (
	"fmt"
	"strings"
)

type MetricsClient interface {
	Inc(key string, value int)
}

// generateActionName turns a command or query value into its bare type name.
func generateActionName(handler any) string {
	name := fmt.Sprintf("%T", handler)
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}

	return strings.TrimPrefix(name, "*")
}
