// Package scene assembles post-processing visuals: orthographic projections
// of the tunnel, object, and streamlines rendered to PNG, and an interactive
// force-coefficient history chart rendered to HTML.
package scene

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aerolab-data/windtunnel/internal/foam"
	"github.com/aerolab-data/windtunnel/internal/geometry"
	"github.com/aerolab-data/windtunnel/internal/tunnel"
)

// Element is one drawable item. Elements are value descriptors collected by
// a Builder; rendering interprets them in insertion order.
type Element interface {
	label() string
}

// WallsElement draws the tunnel outline.
type WallsElement struct {
	Walls tunnel.Walls
}

func (e WallsElement) label() string { return "walls" }

// MeshElement draws a surface mesh, optionally colored by a per-point scalar
// field. A nil Field draws the wireframe in a flat color.
type MeshElement struct {
	Name  string
	Mesh  *geometry.Mesh
	Field []float64
}

func (e MeshElement) label() string { return e.Name }

// TubeElement draws traced streamlines as their center polylines.
type TubeElement struct {
	Lines []foam.Polyline
}

func (e TubeElement) label() string { return "streamlines" }

// SliceElement draws a planar flow slice as points colored by pressure.
type SliceElement struct {
	Slice *foam.FlowSlice
}

func (e SliceElement) label() string { return "slice " + string(e.Slice.Plane) }

// OriginMarker draws a cross at the tunnel origin.
type OriginMarker struct{}

func (e OriginMarker) label() string { return "origin" }

// CoefficientsLabel annotates the render with the converged coefficients.
type CoefficientsLabel struct {
	Coefficients foam.Coefficients
}

func (e CoefficientsLabel) label() string { return "coefficients" }

// Builder accumulates elements for one render. It is not safe for
// concurrent use.
type Builder struct {
	elements []Element
}

// NewBuilder returns an empty scene builder.
func NewBuilder() *Builder { return &Builder{} }

// AddWalls adds the tunnel outline.
func (b *Builder) AddWalls(w tunnel.Walls) *Builder {
	b.elements = append(b.elements, WallsElement{Walls: w})
	return b
}

// AddMesh adds a plain surface mesh.
func (b *Builder) AddMesh(name string, m *geometry.Mesh) *Builder {
	b.elements = append(b.elements, MeshElement{Name: name, Mesh: m})
	return b
}

// AddFieldMesh adds a mesh colored by a per-point scalar field.
func (b *Builder) AddFieldMesh(fm *foam.FieldMesh) *Builder {
	b.elements = append(b.elements, MeshElement{Name: fm.Name, Mesh: fm.Mesh, Field: fm.Field})
	return b
}

// AddStreamlines adds traced streamlines.
func (b *Builder) AddStreamlines(lines []foam.Polyline) *Builder {
	b.elements = append(b.elements, TubeElement{Lines: lines})
	return b
}

// AddFlowSlice adds a planar flow slice.
func (b *Builder) AddFlowSlice(fs *foam.FlowSlice) *Builder {
	b.elements = append(b.elements, SliceElement{Slice: fs})
	return b
}

// AddOriginMarker adds the origin cross.
func (b *Builder) AddOriginMarker() *Builder {
	b.elements = append(b.elements, OriginMarker{})
	return b
}

// AddCoefficients annotates the scene with the converged coefficients.
func (b *Builder) AddCoefficients(c foam.Coefficients) *Builder {
	b.elements = append(b.elements, CoefficientsLabel{Coefficients: c})
	return b
}

// Elements returns the accumulated elements in insertion order.
func (b *Builder) Elements() []Element { return b.elements }

// Len returns the number of accumulated elements.
func (b *Builder) Len() int { return len(b.elements) }

// Projection selects the orthographic view plane for a render.
type Projection int

const (
	// ProjectionXY looks down the z axis (plan view).
	ProjectionXY Projection = iota
	// ProjectionXZ looks down the y axis (side view).
	ProjectionXZ
)

func (p Projection) String() string {
	switch p {
	case ProjectionXY:
		return "xy"
	case ProjectionXZ:
		return "xz"
	}
	return fmt.Sprintf("Projection(%d)", int(p))
}

// axisLabels returns the horizontal and vertical axis names for the view.
func (p Projection) axisLabels() (string, string) {
	if p == ProjectionXZ {
		return "x (m)", "z (m)"
	}
	return "x (m)", "y (m)"
}

// project maps a 3D point into the view plane.
func (p Projection) project(v r3.Vec) (x, y float64) {
	if p == ProjectionXZ {
		return v.X, v.Z
	}
	return v.X, v.Y
}
