package core

import (
	"testing"

	"github.com/valter-silva-au/sentinel/pkg/models"
	"pgregory.net/rapid"
)

func TestServiceRegistry_JitterDirection(t *testing.T) {
	nodes := models.DefaultServices()
	r := NewServiceRegistry(nodes, 2, 5, newStubRNG(0.9, 0.1, 0.5))
	r.Jitter()

	got := r.Snapshot()
	want := []int{nodes[0].LatencyMs + 2, nodes[1].LatencyMs - 2, nodes[2].LatencyMs - 2}
	for i := range want {
		if got[i].LatencyMs != want[i] {
			t.Errorf("%s latency = %d, want %d", got[i].Name, got[i].LatencyMs, want[i])
		}
	}
}

func TestServiceRegistry_Floor(t *testing.T) {
	nodes := []models.ServiceNode{{ID: "edge", Name: "Edge Nodes", LatencyMs: 6, Status: models.ServiceOperational}}
	r := NewServiceRegistry(nodes, 2, 5, newStubRNG(0))
	for i := 0; i < 10; i++ {
		r.Jitter()
	}
	if got := r.Snapshot()[0].LatencyMs; got != 5 {
		t.Errorf("latency = %d, want floor 5", got)
	}
}

func TestServiceRegistry_SnapshotIsIndependent(t *testing.T) {
	r := NewServiceRegistry(models.DefaultServices(), 2, 5, newStubRNG(0.9))
	snap := r.Snapshot()
	snap[0].LatencyMs = 999
	if r.Snapshot()[0].LatencyMs == 999 {
		t.Error("mutating a snapshot changed the registry")
	}
}

func TestServiceRegistry_Reset(t *testing.T) {
	nodes := models.DefaultServices()
	r := NewServiceRegistry(nodes, 2, 5, newStubRNG(0.9))
	r.Jitter()
	r.Reset(nodes)
	for i, s := range r.Snapshot() {
		if s.LatencyMs != nodes[i].LatencyMs {
			t.Errorf("%s latency after Reset = %d, want %d", s.Name, s.LatencyMs, nodes[i].LatencyMs)
		}
	}
}

// Property: latencies never drop below the floor and each step moves by at
// most stepMs.
func TestProperty_JitterBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		start := rapid.IntRange(5, 200).Draw(rt, "start")
		rounds := rapid.IntRange(1, 100).Draw(rt, "rounds")
		nodes := []models.ServiceNode{{ID: "svc", Name: "svc", LatencyMs: start, Status: models.ServiceOperational}}

		r := NewServiceRegistry(nodes, 2, 5, NewRNG(uint64(start)))
		prev := start
		for i := 0; i < rounds; i++ {
			r.Jitter()
			cur := r.Snapshot()[0].LatencyMs
			if cur < 5 {
				rt.Fatalf("latency %d below floor", cur)
			}
			if d := cur - prev; d > 2 || d < -2 {
				rt.Fatalf("step %d exceeds 2", d)
			}
			prev = cur
		}
	})
}
