package odr2lanelet2

// Relation is lanelet of output graph. Relations are 1:1 with source lanelets even when ways are shared.
type Relation struct {
	ID              string
	Left            *Way
	Right           *Way
	Predecessors    []string
	Successors      []string
	TurnDirection   TurnDirection
	SourceLaneletID string
}

// SpeedRegulation is digital speed limit regulatory element attached to single relation
type SpeedRegulation struct {
	ID               string
	TargetRelationID string
	Limit            string
}
