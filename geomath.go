package odr2lanelet2

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// GeoPoint representation of point on Earth
type GeoPoint struct {
	Lat float64
	Lon float64
}

// String returns pretty printed value for GeoPoint
func (gp GeoPoint) String() string {
	return fmt.Sprintf("Lon: %f | Lat: %f", gp.Lon, gp.Lat)
}

// roundTo rounds x half away from zero to given number of decimal digits
func roundTo(x float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(x*p) / p
}

// roundPoint rounds both coordinates of local point
func roundPoint(pt orb.Point, digits int) orb.Point {
	return orb.Point{roundTo(pt.X(), digits), roundTo(pt.Y(), digits)}
}

// toVector converts local point into planar vector
func toVector(pt orb.Point) r2.Point {
	return r2.Point{X: pt.X(), Y: pt.Y()}
}

// wayLocalLine returns local geometry of given way
func wayLocalLine(way *Way) orb.LineString {
	line := make(orb.LineString, len(way.Nodes))
	for i, node := range way.Nodes {
		line[i] = node.Local
	}
	return line
}

// wayGeoLine returns geographic geometry of given way (Lon == X, Lat == Y)
func wayGeoLine(way *Way) orb.LineString {
	line := make(orb.LineString, len(way.Nodes))
	for i, node := range way.Nodes {
		line[i] = orb.Point{node.Geo.Lon, node.Geo.Lat}
	}
	return line
}

// meanBoundaryLength returns mean of left and right boundary lengths (in local units)
func meanBoundaryLength(relation *Relation) float64 {
	left := planar.Length(wayLocalLine(relation.Left))
	right := planar.Length(wayLocalLine(relation.Right))
	return (left + right) / 2.0
}
