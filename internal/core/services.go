package core

import (
	"sync"

	"github.com/valter-silva-au/sentinel/pkg/models"
)

// ServiceRegistry holds the monitored services and applies latency jitter.
type ServiceRegistry struct {
	mu      sync.RWMutex
	nodes   []models.ServiceNode
	stepMs  int
	floorMs int
	rng     RNG
}

// NewServiceRegistry copies nodes into a new registry. Each Jitter moves
// every latency by stepMs up or down, never below floorMs.
func NewServiceRegistry(nodes []models.ServiceNode, stepMs, floorMs int, rng RNG) *ServiceRegistry {
	return &ServiceRegistry{
		nodes:   cloneServices(nodes),
		stepMs:  stepMs,
		floorMs: floorMs,
		rng:     rng,
	}
}

// Jitter applies one coin-flip step to every service's latency.
func (r *ServiceRegistry) Jitter() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.nodes {
		step := -r.stepMs
		if r.rng.Float64() > 0.5 {
			step = r.stepMs
		}
		r.nodes[i].LatencyMs = max(r.floorMs, r.nodes[i].LatencyMs+step)
	}
}

// Snapshot returns a copy of the services in registration order.
func (r *ServiceRegistry) Snapshot() []models.ServiceNode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneServices(r.nodes)
}

// Reset replaces the service set.
func (r *ServiceRegistry) Reset(nodes []models.ServiceNode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes = cloneServices(nodes)
}

func cloneServices(nodes []models.ServiceNode) []models.ServiceNode {
	out := make([]models.ServiceNode, len(nodes))
	copy(out, nodes)
	return out
}
