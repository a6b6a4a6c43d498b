package odr2lanelet2

import (
	"math"

	"github.com/golang/geo/s1"
)

type TurnDirection uint16

const (
	TURN_STRAIGHT = TurnDirection(iota + 1)
	TURN_LEFT
	TURN_RIGHT
)

func (iotaIdx TurnDirection) String() string {
	return [...]string{"straight", "left", "right"}[iotaIdx-1]
}

const DEFAULT_STRAIGHT_ANGLE = 10.0

// TurnEstimator classifies lanelet curvature from its left boundary
type TurnEstimator struct {
	straightAngle s1.Angle
}

// NewTurnEstimator returns estimator treating angles up to straightAngleDeg (inclusive) as straight
func NewTurnEstimator(straightAngleDeg float64) TurnEstimator {
	return TurnEstimator{
		straightAngle: s1.Angle(straightAngleDeg) * s1.Degree,
	}
}

// Classify returns turn direction for lanelet with given left boundary.
//
// Branch points (more than one predecessor or successor) and boundaries with less than 3 points are straight.
// Otherwise angle between start->second and start->last vectors decides straight/turn
// and sign of their cross product decides left (positive) or right.
func (te TurnEstimator) Classify(left *Way, predecessors, successors int) TurnDirection {
	if predecessors > 1 || successors > 1 {
		return TURN_STRAIGHT
	}
	if left == nil || len(left.Nodes) < 3 {
		return TURN_STRAIGHT
	}
	start := toVector(left.Nodes[0].Local)
	startMid := toVector(left.Nodes[1].Local).Sub(start)
	startEnd := toVector(left.Nodes[len(left.Nodes)-1].Local).Sub(start)

	norms := startMid.Norm() * startEnd.Norm()
	if norms == 0 {
		return TURN_STRAIGHT
	}
	cosine := math.Max(-1, math.Min(1, startMid.Dot(startEnd)/norms))
	alpha := s1.Angle(math.Acos(cosine))
	if !(alpha > te.straightAngle) {
		return TURN_STRAIGHT
	}
	if startMid.Cross(startEnd) > 0 {
		return TURN_LEFT
	}
	return TURN_RIGHT
}
