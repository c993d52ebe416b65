package maps

import (
	"github.com/kbukum/mapkit/errors"
	"github.com/kbukum/mapkit/validation"
)

// GeoPoint is a WGS 84 coordinate.
type GeoPoint struct {
	Latitude  float64 `json:"latitude" mapstructure:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" mapstructure:"longitude" validate:"gte=-180,lte=180"`
}

// Validate checks the coordinate ranges.
func (p GeoPoint) Validate() error {
	return validation.Validate(p)
}

// MapConfig describes a map to create. It is built once by the caller and
// reused unchanged, e.g. when the active provider is switched.
type MapConfig struct {
	// Container is the node the map renders into.
	Container DisplayNode `json:"-" validate:"-"`
	// Center is the initial map center.
	Center GeoPoint `json:"center"`
	// Zoom is the initial zoom level.
	Zoom float64 `json:"zoom" validate:"gte=0,lte=24"`
	// Style is a provider-specific style document reference. Providers
	// without style documents ignore it.
	Style string `json:"style,omitempty"`
}

// Validate checks that the config can be handed to a provider.
func (c MapConfig) Validate() error {
	if c.Container == nil {
		return errors.MissingField("container")
	}
	return validation.Validate(c)
}

// MarkerConfig describes a marker to place.
type MarkerConfig struct {
	Position GeoPoint `json:"position"`
}

// Validate checks the marker position.
func (c MarkerConfig) Validate() error {
	return validation.Validate(c)
}

// PolylineConfig describes a line to draw. Path order defines direction.
type PolylineConfig struct {
	Path         []GeoPoint `json:"path" validate:"min=2,dive"`
	StrokeColor  string     `json:"stroke_color" validate:"required"`
	StrokeWeight float64    `json:"stroke_weight" validate:"gt=0"`
}

// Validate checks the path length, the coordinates and the stroke.
func (c PolylineConfig) Validate() error {
	return validation.Validate(c)
}

// ValidateOpacity checks that v lies in [0,1].
func ValidateOpacity(v float64) error {
	if appErr := validation.New().Between("opacity", v, 0, 1).Validate(); appErr != nil {
		return appErr
	}
	return nil
}
