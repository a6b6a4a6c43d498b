package odr2lanelet2

import (
	"strings"

	"github.com/ctessum/geom/proj"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

const (
	// DEFAULT_PROJ_STRING is used when neither input nor configuration provide geo reference
	DEFAULT_PROJ_STRING = "+proj=utm +zone=32 +ellps=WGS84"
	wgs84ProjString     = "+proj=longlat +datum=WGS84 +no_defs"
)

// Projector maps local planar coordinates to WGS84 latitude/longitude
type Projector interface {
	Project(local orb.Point) (GeoPoint, error)
}

// ProjectorFunc is an adapter to use ordinary function as Projector
type ProjectorFunc func(local orb.Point) (GeoPoint, error)

// Project calls f(local)
func (f ProjectorFunc) Project(local orb.Point) (GeoPoint, error) {
	return f(local)
}

// ProjProjector is Projector built on top of proj4 definition string
type ProjProjector struct {
	definition string
	transform  proj.Transformer
}

// NewProjector parses projection definition (e.g. '+proj=tmerc +lat_0=... +lon_0=...')
func NewProjector(definition string) (*ProjProjector, error) {
	definition = strings.TrimSpace(definition)
	if definition == "" {
		definition = DEFAULT_PROJ_STRING
	}
	source, err := proj.Parse(definition)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't parse projection '%s'", definition)
	}
	target, err := proj.Parse(wgs84ProjString)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse WGS84 definition")
	}
	transform, err := source.NewTransform(target)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't prepare transformation for '%s'", definition)
	}
	return &ProjProjector{
		definition: definition,
		transform:  transform,
	}, nil
}

// Definition returns projection string the projector has been built from
func (p *ProjProjector) Definition() string {
	return p.definition
}

// Project returns geographic coordinate of given local point
func (p *ProjProjector) Project(local orb.Point) (GeoPoint, error) {
	lon, lat, err := p.transform(local.X(), local.Y())
	if err != nil {
		return GeoPoint{}, err
	}
	return GeoPoint{Lat: lat, Lon: lon}, nil
}
