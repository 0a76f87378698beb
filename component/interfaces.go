package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Healthy reports whether the status is StatusHealthy.
func (h Health) Healthy() bool { return h.Status == StatusHealthy }

// Component is a lifecycle-managed building block.
type Component interface {
	// Name returns the unique name of the component.
	Name() string

	// Start acquires the component's resources.
	Start(ctx context.Context) error

	// Stop releases them. Stopping a component that never started is a no-op.
	Stop(ctx context.Context) error

	// Health returns the current health status of the component.
	Health(ctx context.Context) Health
}

// Description is what a component reports about itself.
type Description struct {
	// Name is the display name. If empty, the component's Name() is used.
	Name string
	// Type categorizes the component, e.g. "useragent" or "fake-api".
	Type string
	// Details is a one-liner such as "https://chat.example.com/api/v10 timeout=30s".
	Details string
}

// Describable is optionally implemented by Components.
type Describable interface {
	Describe() Description
}

// Describe returns c's description, falling back to its name when c does
// not implement Describable.
func Describe(c Component) Description {
	if d, ok := c.(Describable); ok {
		desc := d.Describe()
		if desc.Name == "" {
			desc.Name = c.Name()
		}
		return desc
	}
	return Description{Name: c.Name()}
}
