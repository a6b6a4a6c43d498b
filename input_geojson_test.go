package odr2lanelet2

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNetwork = `{
  "type": "FeatureCollection",
  "geoReference": "+proj=tmerc +lat_0=47 +lon_0=8 +k=1 +x_0=0 +y_0=0 +ellps=WGS84",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "MultiLineString", "coordinates": [[[0, 0], [5, 0], [10, 5]], [[0, -3], [5, -3], [12, 3]]]},
      "properties": {"id": 1, "speed_limit": 25, "predecessors": [], "successors": [2, "3"]}
    },
    {
      "type": "Feature",
      "id": "2",
      "geometry": {"type": "MultiLineString", "coordinates": [[[10, 5], [12, 9]], [[12, 3], [16, 8]]]},
      "properties": {"speed_limit": 12.5, "predecessors": ["1"]}
    }
  ]
}`

func TestReadLaneletsGeoJSON(t *testing.T) {
	network, err := ReadLaneletsGeoJSON(strings.NewReader(sampleNetwork))
	require.NoError(t, err)
	assert.Equal(t, "+proj=tmerc +lat_0=47 +lon_0=8 +k=1 +x_0=0 +y_0=0 +ellps=WGS84", network.GeoReference)
	require.Len(t, network.Lanelets, 2)

	first := network.Lanelets[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, orb.LineString{{0, 0}, {5, 0}, {10, 5}}, first.Left)
	assert.Equal(t, orb.LineString{{0, -3}, {5, -3}, {12, 3}}, first.Right)
	assert.Equal(t, 25.0, first.SpeedLimit)
	assert.Empty(t, first.Predecessors)
	assert.Equal(t, []string{"2", "3"}, first.Successors)

	second := network.Lanelets[1]
	assert.Equal(t, "2", second.ID)
	assert.Equal(t, 12.5, second.SpeedLimit)
	assert.Equal(t, []string{"1"}, second.Predecessors)
	assert.Empty(t, second.Successors)
}

func TestReadLaneletsGeoJSONMalformed(t *testing.T) {
	doc := `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "MultiLineString", "coordinates": [[[0, 0], [5, 0]]]},
      "properties": {"id": "9"}
    }
  ]
}`
	_, err := ReadLaneletsGeoJSON(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadFeature))
	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "9", inputErr.LaneletID)
}

func TestReadLaneletsGeoJSONMissingID(t *testing.T) {
	doc := `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "LineString", "coordinates": [[0, 0], [5, 0]]},
      "properties": {}
    }
  ]
}`
	_, err := ReadLaneletsGeoJSON(strings.NewReader(doc))
	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "feature #0", inputErr.LaneletID)
}

func TestReadLaneletsGeoJSONShortPosition(t *testing.T) {
	doc := `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "MultiLineString", "coordinates": [[[0, 0], [5], [10, 5]], [[0, -3], [5, -3], [12, 3]]]},
      "properties": {"id": "7"}
    }
  ]
}`
	_, err := ReadLaneletsGeoJSON(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadFeature))
	assert.Contains(t, err.Error(), "position #1")
	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "7", inputErr.LaneletID)
}
