package odr2lanelet2

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

func TestNodeIndexReuse(t *testing.T) {
	geos := map[orb.Point]GeoPoint{
		{0, 0}: {Lat: 47.0, Lon: 8.0},
		{1, 0}: {Lat: 47.0 + 5e-9, Lon: 8.0 - 5e-9},
		{2, 0}: {Lat: 47.0 + 3e-8, Lon: 8.0},
	}
	projector := ProjectorFunc(func(local orb.Point) (GeoPoint, error) {
		return geos[local], nil
	})
	idx := NewNodeIndex(projector, DEFAULT_TOLERANCE, discardLogger)

	first, created, err := idx.ResolveOrInsert(orb.Point{0, 0}, "10000")
	if err != nil {
		t.Error(err)
		return
	}
	if !created {
		t.Errorf("First node must be created")
	}
	second, created, err := idx.ResolveOrInsert(orb.Point{1, 0}, "21000")
	if err != nil {
		t.Error(err)
		return
	}
	if created || second != first {
		t.Errorf("Node within tolerance must be reused: expected '%s', but got '%s'", first.ID, second.ID)
	}
	third, created, err := idx.ResolveOrInsert(orb.Point{2, 0}, "21001")
	if err != nil {
		t.Error(err)
		return
	}
	if !created || third.ID != "21001" {
		t.Errorf("Node beyond tolerance must be new, but got '%s'", third.ID)
	}
	if idx.Len() != 2 {
		t.Errorf("Index must contain 2 buckets, but got %d", idx.Len())
	}
}

func TestNodeIndexAdjacentBuckets(t *testing.T) {
	idx := NewNodeIndex(linearProjector, DEFAULT_TOLERANCE, discardLogger)
	base := GeoPoint{Lat: 47.123456789, Lon: 8.987654321}
	stored := &Node{ID: "stored", Geo: base}
	if !idx.insert(stored) {
		t.Errorf("Node must be indexed")
		return
	}
	offsets := []float64{-9e-9, -5e-9, -1e-9, 1e-9, 5e-9, 9e-9}
	for _, dLat := range offsets {
		for _, dLon := range offsets {
			candidate := GeoPoint{Lat: base.Lat + dLat, Lon: base.Lon + dLon}
			node, ok := idx.Lookup(candidate)
			if !ok || node != stored {
				t.Errorf("Node must be found for %v", candidate)
			}
		}
	}
	if _, ok := idx.Lookup(GeoPoint{Lat: base.Lat + 2e-8, Lon: base.Lon}); ok {
		t.Errorf("Node must not be found beyond tolerance")
	}
}

func TestNodeIndexOverflow(t *testing.T) {
	projector := ProjectorFunc(func(local orb.Point) (GeoPoint, error) {
		return GeoPoint{Lat: 5000.0, Lon: 8.0}, nil
	})
	idx := NewNodeIndex(projector, DEFAULT_TOLERANCE, discardLogger)
	first, created, err := idx.ResolveOrInsert(orb.Point{0, 0}, "a")
	if err != nil || !created {
		t.Errorf("Overflowing coordinate must produce new node, got error: %v", err)
		return
	}
	second, created, err := idx.ResolveOrInsert(orb.Point{0, 0}, "b")
	if err != nil || !created || second == first {
		t.Errorf("Overflowing coordinate must never be matched")
	}
	if idx.Len() != 0 {
		t.Errorf("Overflowing nodes must not be indexed, but index has %d buckets", idx.Len())
	}
}

func TestNodeIndexProjectsOnce(t *testing.T) {
	calls := 0
	projector := ProjectorFunc(func(local orb.Point) (GeoPoint, error) {
		calls++
		return linearProjector.Project(local)
	})
	idx := NewNodeIndex(projector, DEFAULT_TOLERANCE, discardLogger)
	for i := 0; i < 3; i++ {
		_, _, err := idx.ResolveOrInsert(orb.Point{1, 2}, "x")
		if err != nil {
			t.Error(err)
			return
		}
	}
	if calls != 1 {
		t.Errorf("Projection must be called once, but was called %d times", calls)
	}
}

func TestNodeIndexProjectionFailure(t *testing.T) {
	projector := ProjectorFunc(func(local orb.Point) (GeoPoint, error) {
		return GeoPoint{}, errors.New("out of zone")
	})
	idx := NewNodeIndex(projector, DEFAULT_TOLERANCE, discardLogger)
	_, _, err := idx.ResolveOrInsert(orb.Point{0, 0}, "x")
	if !errors.Is(err, ErrProjection) {
		t.Errorf("Error must be caused by ErrProjection, but got %v", err)
	}
}
