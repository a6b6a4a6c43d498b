package odr2lanelet2

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfiguration(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "conf.yaml")
	content := `
input: town.geojson
output: town.osm
geo_reference: "+proj=tmerc +lat_0=47 +lon_0=8"
min_matches: 7
speed_unit: km/h
emit_geo_reference: false
route: "1, 5"
`
	require.NoError(t, os.WriteFile(fname, []byte(content), 0644))

	cfg, err := LoadConfiguration(fname)
	require.NoError(t, err)
	assert.Equal(t, "town.geojson", cfg.Input)
	assert.Equal(t, "town.osm", cfg.Output)
	assert.Equal(t, 7, cfg.MinMatches)
	assert.Equal(t, "km/h", cfg.SpeedUnit)
	assert.False(t, cfg.EmitGeoReference)
	// Defaults survive
	assert.Equal(t, DEFAULT_TOLERANCE, cfg.Tolerance)
	assert.Equal(t, DEFAULT_MIN_MATCH_RATIO, cfg.MinMatchRatio)
	assert.Equal(t, DEFAULT_GENERATOR, cfg.Generator)
	require.NoError(t, cfg.Validate())

	from, to, ok := cfg.RouteEnds()
	assert.True(t, ok)
	assert.Equal(t, "1", from)
	assert.Equal(t, "5", to)
}

func TestConfigurationValidate(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Input = "town.xodr"
	cfg.Output = "town.osm"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file must be GeoJSON")

	cfg.Input = "town.geojson"
	cfg.Output = "town.xml"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output file must be Lanelet2 .osm file")

	cfg.Output = "town.osm"
	cfg.Route = "1"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "route must be")

	cfg.Route = ""
	cfg.Tolerance = 0
	require.Error(t, cfg.Validate())

	// Scaled longitude of 180 degrees must fit bucket key
	cfg.Tolerance = 1e-9
	require.Error(t, cfg.Validate())
	cfg.Tolerance = 2e-9
	require.NoError(t, cfg.Validate())

	cfg.Tolerance = DEFAULT_TOLERANCE
	assert.NoError(t, cfg.Validate())
}

func TestConfigurationConverterOptions(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.MinMatches = 2
	cfg.SpeedUnit = ""
	conv := NewConverter(linearProjector, cfg.ConverterOptions()...)
	assert.Equal(t, 2, conv.minMatches)
	assert.Equal(t, "", conv.speedUnit)
	assert.Equal(t, DEFAULT_TOLERANCE, conv.tolerance)
}
