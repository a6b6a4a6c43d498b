package odr2lanelet2

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// ExportWaysGeoJSON returns FeatureCollection with LineString (lon/lat) per way of graph
func ExportWaysGeoJSON(graph *Graph) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, way := range graph.Ways {
		line := wayGeoLine(way)
		coords := make([][]float64, len(line))
		for i, pt := range line {
			coords[i] = []float64{pt.X(), pt.Y()}
		}
		feature := geojson.NewLineStringFeature(coords)
		feature.SetProperty("id", way.ID)
		feature.SetProperty("type", wayType)
		feature.SetProperty("subtype", waySubtype)
		fc.AddFeature(feature)
	}
	b, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "Can't convert ways to geojson format")
	}
	return b, nil
}
