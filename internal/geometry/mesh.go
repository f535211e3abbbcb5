// Package geometry provides the polygonal surface mesh primitives used by the
// wind tunnel placement and reconstruction pipelines.
//
// Meshes are immutable by convention: every transform returns a new mesh and
// never writes through the receiver's point slice. Face index slices are
// shared between the input and output mesh because transforms never change
// topology.
package geometry

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Axis identifies one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Vector returns the unit vector along the axis.
func (a Axis) Vector() r3.Vec {
	switch a {
	case AxisX:
		return r3.Vec{X: 1}
	case AxisY:
		return r3.Vec{Y: 1}
	default:
		return r3.Vec{Z: 1}
	}
}

// GeometryError reports a degenerate or invalid mesh, or invalid transform
// parameters. Operations never return NaN or Inf results; they fail with a
// GeometryError instead.
type GeometryError struct {
	Op     string
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry: %s: %s", e.Op, e.Reason)
}

// IsGeometryError reports whether err is, or wraps, a GeometryError.
func IsGeometryError(err error) bool {
	var ge *GeometryError
	return errors.As(err, &ge)
}

// Mesh is a polygonal surface: a set of 3D points and a set of faces indexing
// into them. Faces may be triangles, quads, or larger polygons. The pipelines
// assume a watertight single-object surface for area and length computations,
// but this is not enforced.
type Mesh struct {
	Points []r3.Vec
	Faces  [][]int
}

// NumPoints returns the number of points in the mesh.
func (m *Mesh) NumPoints() int { return len(m.Points) }

// NumFaces returns the number of faces in the mesh.
func (m *Mesh) NumFaces() int { return len(m.Faces) }

func (m *Mesh) validate(op string) error {
	if m == nil || len(m.Points) == 0 {
		return &GeometryError{Op: op, Reason: "mesh has no points"}
	}
	return nil
}

// Box is an axis-aligned bounding box.
type Box struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// Center returns the geometric center of the box.
func (b Box) Center() r3.Vec {
	return r3.Vec{
		X: (b.XMin + b.XMax) / 2,
		Y: (b.YMin + b.YMax) / 2,
		Z: (b.ZMin + b.ZMax) / 2,
	}
}

// Extent returns the box size along the given axis.
func (b Box) Extent(a Axis) float64 {
	switch a {
	case AxisX:
		return b.XMax - b.XMin
	case AxisY:
		return b.YMax - b.YMin
	default:
		return b.ZMax - b.ZMin
	}
}

// Bounds computes the axis-aligned bounding box over all mesh points. The
// box is recomputed from the current points on every call, so it always
// reflects any transform already applied.
func Bounds(m *Mesh) (Box, error) {
	if err := m.validate("bounds"); err != nil {
		return Box{}, err
	}
	p0 := m.Points[0]
	b := Box{
		XMin: p0.X, XMax: p0.X,
		YMin: p0.Y, YMax: p0.Y,
		ZMin: p0.Z, ZMax: p0.Z,
	}
	for _, p := range m.Points[1:] {
		if p.X < b.XMin {
			b.XMin = p.X
		}
		if p.X > b.XMax {
			b.XMax = p.X
		}
		if p.Y < b.YMin {
			b.YMin = p.Y
		}
		if p.Y > b.YMax {
			b.YMax = p.Y
		}
		if p.Z < b.ZMin {
			b.ZMin = p.Z
		}
		if p.Z > b.ZMax {
			b.ZMax = p.Z
		}
	}
	return b, nil
}

// LengthAlongAxis returns the bounding-box extent of the mesh along an axis.
func LengthAlongAxis(m *Mesh, a Axis) (float64, error) {
	b, err := Bounds(m)
	if err != nil {
		return 0, err
	}
	return b.Extent(a), nil
}
