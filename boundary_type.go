package odr2lanelet2

import (
	"fmt"
	"strconv"
)

// BoundaryType is side of lanelet. Its value is the digit used in node and way ids.
type BoundaryType uint16

const (
	BOUNDARY_LEFT = BoundaryType(iota)
	BOUNDARY_RIGHT
)

func (iotaIdx BoundaryType) String() string {
	return [...]string{"left", "right"}[iotaIdx]
}

// maxVertexIndex is the biggest vertex index fitting 3-digit part of node id
const maxVertexIndex = 999

// nodeID returns id for idx-th vertex of given boundary: relation id + side digit + 3-digit index
func nodeID(relationID string, side BoundaryType, idx int) string {
	return fmt.Sprintf("%s%d%03d", relationID, side, idx)
}

// wayID returns id for boundary way: relation id + side digit
func wayID(relationID string, side BoundaryType) string {
	return relationID + strconv.Itoa(int(side))
}

// speedRegulationID returns id of speed regulation attached to relation
func speedRegulationID(relationID string) string {
	return relationID + "00"
}
