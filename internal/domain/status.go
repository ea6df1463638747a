package domain

type (
	// DependencyCheckStatus is the outcome of checking one collaborator of the relay.
	DependencyCheckStatus string

	HealthResponseStatus string
)

const (
	DependencyCheckStatusHealthy   DependencyCheckStatus = "healthy"
	DependencyCheckStatusDegraded  DependencyCheckStatus = "degraded"
	DependencyCheckStatusUnhealthy DependencyCheckStatus = "unhealthy"
	DependencyCheckStatusDisabled  DependencyCheckStatus = "disabled"
)

const (
	HealthResponseStatusHealthy   HealthResponseStatus = "healthy"
	HealthResponseStatusDegraded  HealthResponseStatus = "degraded"
	HealthResponseStatusUnhealthy HealthResponseStatus = "unhealthy"
)

// Failing reports a dependency known to be broken. A disabled check never fails.
func (s DependencyCheckStatus) Failing() bool {
	return s == DependencyCheckStatusUnhealthy
}

// Impaired is true for degraded and unhealthy dependencies.
func (s DependencyCheckStatus) Impaired() bool {
	return s == DependencyCheckStatusDegraded || s == DependencyCheckStatusUnhealthy
}

// Operational is false only when the relay can neither send nor buffer.
func (s HealthResponseStatus) Operational() bool {
	return s == HealthResponseStatusHealthy || s == HealthResponseStatusDegraded
}
