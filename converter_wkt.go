package odr2lanelet2

import (
	"encoding/csv"
	"io"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

// ExportWaysWKT writes 'id;geom' rows with WKT LineString (lon/lat) for every way of graph
func ExportWaysWKT(graph *Graph, w io.Writer) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	err := writer.Write([]string{"id", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, way := range graph.Ways {
		err = writer.Write([]string{way.ID, wkt.MarshalString(wayGeoLine(way))})
		if err != nil {
			return errors.Wrapf(err, "Can't write way '%s'", way.ID)
		}
	}
	writer.Flush()
	return writer.Error()
}
