package domain

import (
	"time"
)

type (
	// DependencyStatus represents the health status of a dependency.
	DependencyStatus struct {
		Status       DependencyCheckStatus `json:"status"`
		ResponseTime float32               `json:"response_time_ms"`
		LastChecked  time.Time             `json:"last_checked"`
		Error        string                `json:"error,omitempty"`
		Details      map[string]any        `json:"details,omitempty"`
	}

	// HealthResult aggregates the broker connection, the publisher and the broker probe.
	HealthResult struct {
		OverallStatus HealthResponseStatus `json:"status"`
		Connection    DependencyStatus     `json:"connection"`
		Publisher     DependencyStatus     `json:"publisher"`
		Broker        DependencyStatus     `json:"broker"`
		Uptime        float32              `json:"uptime_seconds"`
	}
)
