package odr2lanelet2

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// RoadNetwork is lanelet network yielded by road geometry collaborator
type RoadNetwork struct {
	GeoReference string
	Lanelets     []LaneletInput
}

// ReadLaneletsGeoJSONFile reads road network from GeoJSON file
func ReadLaneletsGeoJSONFile(fname string) (*RoadNetwork, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer f.Close()
	return ReadLaneletsGeoJSON(f)
}

// ReadLaneletsGeoJSON reads FeatureCollection where every feature is a lanelet:
// MultiLineString geometry [left, right] in local coordinates and properties
// 'id', 'speed_limit', 'predecessors', 'successors'. Top-level 'geoReference' holds projection string.
func ReadLaneletsGeoJSON(r io.Reader) (*RoadNetwork, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read input")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse GeoJSON FeatureCollection")
	}
	header := struct {
		GeoReference string `json:"geoReference"`
	}{}
	err = json.Unmarshal(data, &header)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse geoReference")
	}
	network := &RoadNetwork{
		GeoReference: header.GeoReference,
		Lanelets:     make([]LaneletInput, 0, len(fc.Features)),
	}
	for i, feature := range fc.Features {
		lanelet, err := laneletFromFeature(feature)
		if err != nil {
			id := lanelet.ID
			if id == "" {
				id = fmt.Sprintf("feature #%d", i)
			}
			return nil, newInputError(id, err)
		}
		network.Lanelets = append(network.Lanelets, lanelet)
	}
	return network, nil
}

func laneletFromFeature(feature *geojson.Feature) (LaneletInput, error) {
	lanelet := LaneletInput{}
	id, ok := stringifyID(feature.Properties["id"])
	if !ok {
		id, ok = stringifyID(feature.ID)
	}
	if !ok {
		return lanelet, errors.Wrap(ErrBadFeature, "missing id")
	}
	lanelet.ID = id

	if feature.Geometry == nil || !feature.Geometry.IsMultiLineString() {
		return lanelet, errors.Wrap(ErrBadFeature, "geometry must be MultiLineString")
	}
	lines := feature.Geometry.MultiLineString
	if len(lines) != 2 {
		return lanelet, errors.Wrapf(ErrBadFeature, "expected 2 boundaries, got %d", len(lines))
	}
	var err error
	lanelet.Left, err = toLineString(lines[0])
	if err != nil {
		return lanelet, errors.Wrap(err, BOUNDARY_LEFT.String())
	}
	lanelet.Right, err = toLineString(lines[1])
	if err != nil {
		return lanelet, errors.Wrap(err, BOUNDARY_RIGHT.String())
	}

	if raw, ok := feature.Properties["speed_limit"]; ok && raw != nil {
		limit, ok := raw.(float64)
		if !ok {
			return lanelet, errors.Wrapf(ErrBadFeature, "speed_limit must be a number, got %v", raw)
		}
		lanelet.SpeedLimit = limit
	}
	lanelet.Predecessors, err = idList(feature.Properties["predecessors"])
	if err != nil {
		return lanelet, errors.Wrap(err, "predecessors")
	}
	lanelet.Successors, err = idList(feature.Properties["successors"])
	if err != nil {
		return lanelet, errors.Wrap(err, "successors")
	}
	return lanelet, nil
}

// toLineString keeps X and Y of every position. Positions with less than 2 components are rejected.
func toLineString(coords [][]float64) (orb.LineString, error) {
	line := make(orb.LineString, 0, len(coords))
	for i, c := range coords {
		if len(c) < 2 {
			return nil, errors.Wrapf(ErrBadFeature, "position #%d has %d components", i, len(c))
		}
		line = append(line, orb.Point{c[0], c[1]})
	}
	return line, nil
}

// stringifyID accepts string or JSON number ids
func stringifyID(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, v != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	}
	return "", false
}

func idList(raw interface{}) ([]string, error) {
	if raw == nil {
		return []string{}, nil
	}
	values, ok := raw.([]interface{})
	if !ok {
		return nil, errors.Wrapf(ErrBadFeature, "expected array of ids, got %v", raw)
	}
	ids := make([]string, 0, len(values))
	for _, value := range values {
		id, ok := stringifyID(value)
		if !ok {
			return nil, errors.Wrapf(ErrBadFeature, "bad id %v", value)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
