package core

import (
	"testing"

	"pgregory.net/rapid"
)

func TestNewSeriesBuffer_SeededWindow(t *testing.T) {
	b := NewSeriesBuffer(DefaultPoints, DefaultSeedValue)
	snap := b.Snapshot()
	if len(snap) != 40 {
		t.Fatalf("len = %d, want 40", len(snap))
	}
	for i, v := range snap {
		if v != 40 {
			t.Fatalf("snap[%d] = %v, want 40", i, v)
		}
	}
	if b.CurrentLoad() != 40 {
		t.Errorf("CurrentLoad() = %d, want 40", b.CurrentLoad())
	}
}

func TestNewSeriesBuffer_NonPositiveCapacity(t *testing.T) {
	if got := NewSeriesBuffer(0, 1).Len(); got != DefaultPoints {
		t.Errorf("Len() = %d, want %d", got, DefaultPoints)
	}
}

func TestSeriesBuffer_AppendEvictsOldest(t *testing.T) {
	b := NewSeriesBuffer(4, 0)
	for _, v := range []float64{1, 2, 3, 4, 5, 6} {
		b.Append(v)
	}
	want := []float64{3, 4, 5, 6}
	got := b.Snapshot()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Snapshot() = %v, want %v", got, want)
		}
	}
	if b.Latest() != 6 {
		t.Errorf("Latest() = %v, want 6", b.Latest())
	}
}

func TestSeriesBuffer_SnapshotIsIndependent(t *testing.T) {
	b := NewSeriesBuffer(3, 10)
	snap := b.Snapshot()
	snap[0] = 99
	if b.Snapshot()[0] != 10 {
		t.Error("mutating a snapshot changed the buffer")
	}
}

func TestSeriesBuffer_Reset(t *testing.T) {
	b := NewSeriesBuffer(3, 10)
	b.Append(55.5)
	b.Reset(20)
	for i, v := range b.Snapshot() {
		if v != 20 {
			t.Errorf("after Reset snap[%d] = %v, want 20", i, v)
		}
	}
	if b.Latest() != 20 {
		t.Errorf("Latest() after Reset = %v, want 20", b.Latest())
	}
}

// Property: the window length never changes, and the newest value is
// always the last element of the snapshot.
func TestProperty_SeriesBufferFixedLength(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		capacity := rapid.IntRange(1, 64).Draw(rt, "capacity")
		values := rapid.SliceOf(rapid.Float64Range(0, 100)).Draw(rt, "values")

		b := NewSeriesBuffer(capacity, 40)
		for _, v := range values {
			b.Append(v)
			snap := b.Snapshot()
			if len(snap) != capacity {
				rt.Fatalf("len = %d, want %d", len(snap), capacity)
			}
			if snap[len(snap)-1] != v {
				rt.Fatalf("last = %v, want %v", snap[len(snap)-1], v)
			}
		}
	})
}
