package odr2lanelet2

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"golang.org/x/exp/slog"
)

const (
	// DEFAULT_TOLERANCE is max per-axis difference (degrees) for two points to be the same node
	DEFAULT_TOLERANCE = 1e-8
	// bucketAxisLimit keeps scaled axis within 12 characters (sign + 11 digits)
	bucketAxisLimit = 1e11
)

// probeOffsets are scaled offsets probed on both axes around candidate's own bucket
var probeOffsets = [...]float64{-1.1, -0.5, 0, 0.5, 1.1}

// NodeIndex finds already created node lying within tolerance of geographic coordinate.
//
// Index holds back-references only: created nodes are owned by the caller's Graph.
type NodeIndex struct {
	projector Projector
	tolerance float64
	scale     float64
	buckets   map[string]*Node
	projected map[orb.Point]GeoPoint
	logger    *slog.Logger
}

// NewNodeIndex returns empty index scoped to single conversion run
func NewNodeIndex(projector Projector, tolerance float64, logger *slog.Logger) *NodeIndex {
	if tolerance <= 0 {
		tolerance = DEFAULT_TOLERANCE
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NodeIndex{
		projector: projector,
		tolerance: tolerance,
		scale:     1.0 / tolerance,
		buckets:   make(map[string]*Node),
		projected: make(map[orb.Point]GeoPoint),
		logger:    logger,
	}
}

// bucketKey formats two floored scaled axes as fixed-width signed integers.
// Returns false when any axis does not fit the width.
func bucketKey(lat, lon float64) (string, bool) {
	if !fitsBucket(lat) || !fitsBucket(lon) {
		return "", false
	}
	return fmt.Sprintf("%+012d%+012d", int64(lat), int64(lon)), true
}

func fitsBucket(v float64) bool {
	return !math.IsNaN(v) && math.Abs(v) < bucketAxisLimit
}

// project returns geographic coordinate for local point. Each distinct local point is projected once.
func (idx *NodeIndex) project(local orb.Point) (GeoPoint, error) {
	if geo, ok := idx.projected[local]; ok {
		return geo, nil
	}
	geo, err := idx.projector.Project(local)
	if err != nil {
		return GeoPoint{}, errors.Wrapf(ErrProjection, "%v: %s", local, err.Error())
	}
	idx.projected[local] = geo
	return geo, nil
}

// Lookup returns node within tolerance of given coordinate if any
func (idx *NodeIndex) Lookup(geo GeoPoint) (*Node, bool) {
	scaledLat := geo.Lat * idx.scale
	scaledLon := geo.Lon * idx.scale
	for _, dLat := range probeOffsets {
		for _, dLon := range probeOffsets {
			key, ok := bucketKey(math.Floor(scaledLat+dLat), math.Floor(scaledLon+dLon))
			if !ok {
				continue
			}
			node, ok := idx.buckets[key]
			if !ok {
				continue
			}
			if math.Abs(node.Geo.Lat-geo.Lat) < idx.tolerance && math.Abs(node.Geo.Lon-geo.Lon) < idx.tolerance {
				return node, true
			}
		}
	}
	return nil, false
}

// insert registers node under its own bucket
func (idx *NodeIndex) insert(node *Node) bool {
	key, ok := bucketKey(math.Floor(node.Geo.Lat*idx.scale), math.Floor(node.Geo.Lon*idx.scale))
	if !ok {
		return false
	}
	idx.buckets[key] = node
	return true
}

// ResolveOrInsert returns existing node within tolerance of local point's geographic coordinate
// or creates new one with given id. Second returned value is true when node has been created.
//
// A coordinate whose bucket key can't be formatted is never matched: new node is created and left unindexed.
func (idx *NodeIndex) ResolveOrInsert(local orb.Point, id string) (*Node, bool, error) {
	geo, err := idx.project(local)
	if err != nil {
		return nil, false, err
	}
	if node, ok := idx.Lookup(geo); ok {
		return node, false, nil
	}
	node := &Node{
		ID:    id,
		Local: local,
		Geo:   geo,
	}
	if !idx.insert(node) {
		idx.logger.Debug("bucket key overflow, node is not indexed", "node", id, "point", geo.String())
	}
	return node, true, nil
}

// Len returns number of indexed buckets
func (idx *NodeIndex) Len() int {
	return len(idx.buckets)
}
