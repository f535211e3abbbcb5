// Package tunnel models the virtual wind tunnel: the rectangular flow
// domain, the object placement pipeline that moves a user mesh into
// tunnel-local coordinates, and the resource sizing policy for the external
// solver's domain decomposition.
package tunnel

import (
	"errors"
	"fmt"
)

// Wall placement factors applied to the tunnel dimensions. The object sits
// closer to the inlet than the outlet, centered across the width, on the
// floor at z=0.
const (
	xMinFactor = -0.3
	xMaxFactor = 0.7
	yMinFactor = -0.5
	yMaxFactor = 0.5
	zMinFactor = 0.0
	zMaxFactor = 1.0
)

// Factors bounding the normalized object size relative to the tunnel
// dimensions. Chosen so a normalized object fits within a circle of radius 1
// for the default tunnel size.
const (
	maxObjectLengthFactor = 0.5
	maxObjectWidthFactor  = 0.2
	maxObjectHeightFactor = 0.125
)

// DefaultDimensions is the default tunnel size (length, width, height).
var DefaultDimensions = [3]float64{20, 10, 8}

// ConfigurationError reports invalid tunnel bounds or an invalid machine
// group resolution.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("tunnel config: %s: %s", e.Field, e.Reason)
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// Walls holds the six wall coordinates of the rectangular flow domain.
// Created once per tunnel configuration and immutable afterward; it defines
// both the simulated domain and the rendering frame.
type Walls struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// Validate checks that min < max on each axis.
func (w Walls) Validate() error {
	type axis struct {
		name     string
		min, max float64
	}
	for _, a := range []axis{
		{"x", w.XMin, w.XMax},
		{"y", w.YMin, w.YMax},
		{"z", w.ZMin, w.ZMax},
	} {
		if a.min >= a.max {
			return &ConfigurationError{
				Field:  a.name,
				Reason: fmt.Sprintf("wall min %v must be below max %v", a.min, a.max),
			}
		}
	}
	return nil
}

// Tunnel is the wind tunnel configuration: its overall dimensions, derived
// wall coordinates, and the maximum normalized object size.
type Tunnel struct {
	Length, Width, Height float64
	Walls                 Walls
}

// New derives a tunnel from a (length, width, height) triple using the fixed
// wall placement factors.
func New(length, width, height float64) (*Tunnel, error) {
	t := &Tunnel{
		Length: length,
		Width:  width,
		Height: height,
		Walls: Walls{
			XMin: length * xMinFactor,
			XMax: length * xMaxFactor,
			YMin: width * yMinFactor,
			YMax: width * yMaxFactor,
			ZMin: height * zMinFactor,
			ZMax: height * zMaxFactor,
		},
	}
	if err := t.Walls.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Default returns the tunnel with the default dimensions.
func Default() *Tunnel {
	t, err := New(DefaultDimensions[0], DefaultDimensions[1], DefaultDimensions[2])
	if err != nil {
		// Default dimensions are compile-time constants; a failure here is
		// a programming error.
		panic(err)
	}
	return t
}

// MaxObjectDimensions returns the target bounds for object normalization.
func (t *Tunnel) MaxObjectDimensions() (length, width, height float64) {
	return t.Length * maxObjectLengthFactor,
		t.Width * maxObjectWidthFactor,
		t.Height * maxObjectHeightFactor
}
