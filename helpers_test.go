package odr2lanelet2

import (
	"io"

	"github.com/paulmach/orb"
	"golang.org/x/exp/slog"
)

// degreesPerUnit makes one local unit roughly one meter
const degreesPerUnit = 1e-5

// linearProjector maps local (x, y) onto small area around (47, 8)
var linearProjector = ProjectorFunc(func(local orb.Point) (GeoPoint, error) {
	return GeoPoint{
		Lat: 47.0 + local.Y()*degreesPerUnit,
		Lon: 8.0 + local.X()*degreesPerUnit,
	}, nil
})

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func straightLine(fromX, y float64, n int, step float64) orb.LineString {
	line := make(orb.LineString, n)
	for i := 0; i < n; i++ {
		line[i] = orb.Point{fromX + float64(i)*step, y}
	}
	return line
}

func shiftLine(line orb.LineString, dx, dy float64) orb.LineString {
	shifted := make(orb.LineString, len(line))
	for i, pt := range line {
		shifted[i] = orb.Point{pt.X() + dx, pt.Y() + dy}
	}
	return shifted
}

func wayFromLocal(id string, line orb.LineString) *Way {
	way := &Way{ID: id, Nodes: make([]*Node, len(line))}
	for i, pt := range line {
		way.Nodes[i] = &Node{ID: nodeID(id, BOUNDARY_LEFT, i), Local: pt}
	}
	return way
}
