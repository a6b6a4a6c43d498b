package odr2lanelet2

import (
	"github.com/paulmach/orb"
)

// Node is a shared point of output graph. It is never mutated after creation.
type Node struct {
	ID    string
	Local orb.Point
	Geo   GeoPoint
}
