package odr2lanelet2

import (
	"sort"
	"strconv"

	"github.com/paulmach/orb"
)

// LaneletInput is single lane yielded by road network collaborator (local planar coordinates)
type LaneletInput struct {
	ID           string
	Left         orb.LineString
	Right        orb.LineString
	SpeedLimit   float64
	Predecessors []string
	Successors   []string
}

// lessLaneletID orders ids numerically when both are integers and lexicographically otherwise
func lessLaneletID(a, b string) bool {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return ai < bi
	}
	if errA == nil {
		return true
	}
	if errB == nil {
		return false
	}
	return a < b
}

// SortLanelets returns copy of lanelets in ascending id order. This order decides which lanelet owns canonical nodes and ways.
func SortLanelets(lanelets []LaneletInput) []LaneletInput {
	sorted := make([]LaneletInput, len(lanelets))
	copy(sorted, lanelets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessLaneletID(sorted[i].ID, sorted[j].ID)
	})
	return sorted
}

// uniqueIDs drops repeated ids keeping first appearance order
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
