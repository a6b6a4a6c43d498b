package odr2lanelet2

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Configuration of single conversion run
type Configuration struct {
	Input            string  `yaml:"input" validate:"required,inputext"`
	Output           string  `yaml:"output" validate:"required,outputext"`
	GeoReference     string  `yaml:"geo_reference"`
	Tolerance        float64 `yaml:"tolerance" validate:"gte=2e-9,lt=1"`
	RoundDigits      int     `yaml:"round_digits" validate:"gte=0,lte=9"`
	MinMatches       int     `yaml:"min_matches" validate:"gte=0"`
	MinMatchRatio    float64 `yaml:"min_match_ratio" validate:"gte=0,lte=1"`
	StraightAngle    float64 `yaml:"straight_angle_deg" validate:"gte=0,lte=180"`
	SpeedUnit        string  `yaml:"speed_unit"`
	Generator        string  `yaml:"generator"`
	EmitGeoReference bool    `yaml:"emit_geo_reference"`
	GeoJSON          string  `yaml:"geojson"`
	WKT              string  `yaml:"wkt"`
	Verify           bool    `yaml:"verify"`
	Route            string  `yaml:"route" validate:"omitempty,route"`
}

// DefaultConfiguration returns configuration with every default applied
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Tolerance:        DEFAULT_TOLERANCE,
		RoundDigits:      DEFAULT_ROUND_DIGITS,
		MinMatches:       DEFAULT_MIN_MATCHES,
		MinMatchRatio:    DEFAULT_MIN_MATCH_RATIO,
		StraightAngle:    DEFAULT_STRAIGHT_ANGLE,
		SpeedUnit:        DEFAULT_SPEED_UNIT,
		Generator:        DEFAULT_GENERATOR,
		EmitGeoReference: true,
	}
}

// LoadConfiguration reads YAML file over defaults
func LoadConfiguration(fname string) (*Configuration, error) {
	cfg := DefaultConfiguration()
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read configuration file")
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't parse configuration file '%s'", fname)
	}
	return cfg, nil
}

func validateInputExt(fl validator.FieldLevel) bool {
	ext := strings.ToLower(filepath.Ext(fl.Field().String()))
	return ext == ".geojson" || ext == ".json"
}

func validateOutputExt(fl validator.FieldLevel) bool {
	return strings.ToLower(filepath.Ext(fl.Field().String())) == ".osm"
}

func validateRoute(fl validator.FieldLevel) bool {
	_, _, ok := splitRoute(fl.Field().String())
	return ok
}

// splitRoute parses 'from,to' pair of lanelet ids
func splitRoute(route string) (string, string, bool) {
	parts := strings.Split(route, ",")
	if len(parts) != 2 {
		return "", "", false
	}
	from, to := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	return from, to, from != "" && to != ""
}

// RouteEnds returns source and target lanelets of configured route
func (cfg *Configuration) RouteEnds() (string, string, bool) {
	return splitRoute(cfg.Route)
}

// Validate checks configuration fields
func (cfg *Configuration) Validate() error {
	validate := validator.New()
	validators := map[string]validator.Func{
		"inputext":  validateInputExt,
		"outputext": validateOutputExt,
		"route":     validateRoute,
	}
	for tag, fn := range validators {
		err := validate.RegisterValidation(tag, fn)
		if err != nil {
			return errors.Wrapf(err, "Can't register '%s' validation", tag)
		}
	}
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(err, "Can't validate configuration")
	}
	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "inputext":
			messages = append(messages, "input file must be GeoJSON (.geojson or .json) file")
		case "outputext":
			messages = append(messages, "output file must be Lanelet2 .osm file")
		case "route":
			messages = append(messages, "route must be 'from,to' pair of lanelet ids")
		default:
			messages = append(messages, e.Field()+" fails '"+e.Tag()+"' rule")
		}
	}
	return errors.New(strings.Join(messages, "; "))
}

// ConverterOptions returns converter options matching configuration
func (cfg *Configuration) ConverterOptions() []func(*Converter) {
	return []func(*Converter){
		WithTolerance(cfg.Tolerance),
		WithRoundDigits(cfg.RoundDigits),
		WithMatchThresholds(cfg.MinMatches, cfg.MinMatchRatio),
		WithStraightAngle(cfg.StraightAngle),
		WithSpeedUnit(cfg.SpeedUnit),
	}
}

// WriterOptions returns document options for resolved geo reference
func (cfg *Configuration) WriterOptions(geoReference string) WriterOptions {
	return WriterOptions{
		Generator:        cfg.Generator,
		GeoReference:     geoReference,
		EmitGeoReference: cfg.EmitGeoReference,
	}
}
