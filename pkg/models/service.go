package models

// ServiceStatus is the display state of a monitored service.
type ServiceStatus string

const (
	ServiceOperational ServiceStatus = "operational"
	ServiceDegraded    ServiceStatus = "degraded"
)

// ServiceNode is one monitored service. The engine only ever changes
// LatencyMs; Status is carried for display.
type ServiceNode struct {
	ID        string        `yaml:"id" json:"id" mapstructure:"id"`
	Name      string        `yaml:"name" json:"name" mapstructure:"name"`
	LatencyMs int           `yaml:"latency_ms" json:"latency_ms" mapstructure:"latency_ms"`
	Status    ServiceStatus `yaml:"status" json:"status" mapstructure:"status"`
}

// DefaultServices returns the services shown on a fresh dashboard.
func DefaultServices() []ServiceNode {
	return []ServiceNode{
		{ID: "1", Name: "API Gateway", LatencyMs: 24, Status: ServiceOperational},
		{ID: "2", Name: "Auth Cluster", LatencyMs: 45, Status: ServiceOperational},
		{ID: "3", Name: "Edge Nodes", LatencyMs: 12, Status: ServiceOperational},
	}
}
