package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Translate returns a copy of the mesh with v added to every point.
func Translate(m *Mesh, v r3.Vec) (*Mesh, error) {
	if err := m.validate("translate"); err != nil {
		return nil, err
	}
	pts := make([]r3.Vec, len(m.Points))
	for i, p := range m.Points {
		pts[i] = r3.Add(p, v)
	}
	return &Mesh{Points: pts, Faces: m.Faces}, nil
}

// RotateAboutAxis returns a copy of the mesh rotated about the given axis
// through the origin by degrees. A zero angle is a true no-op: the input
// mesh is returned unchanged, with no rotation applied, so repeated
// zero-angle calls introduce no floating-point drift.
func RotateAboutAxis(m *Mesh, axis r3.Vec, degrees float64) (*Mesh, error) {
	if err := m.validate("rotate"); err != nil {
		return nil, err
	}
	if degrees == 0 {
		return m, nil
	}
	if r3.Norm(axis) == 0 {
		return nil, &GeometryError{Op: "rotate", Reason: "zero-length rotation axis"}
	}
	rot := r3.NewRotation(degrees*math.Pi/180, axis)
	pts := make([]r3.Vec, len(m.Points))
	for i, p := range m.Points {
		pts[i] = rot.Rotate(p)
	}
	return &Mesh{Points: pts, Faces: m.Faces}, nil
}

// RotateZ rotates the mesh about the z axis by degrees.
func RotateZ(m *Mesh, degrees float64) (*Mesh, error) {
	return RotateAboutAxis(m, r3.Vec{Z: 1}, degrees)
}

// Scale returns a copy of the mesh scaled uniformly about the origin.
func Scale(m *Mesh, factor float64) (*Mesh, error) {
	return ScaleXYZ(m, factor, factor, factor)
}

// ScaleXYZ returns a copy of the mesh scaled per-axis about the origin.
// All factors must be positive.
func ScaleXYZ(m *Mesh, fx, fy, fz float64) (*Mesh, error) {
	if err := m.validate("scale"); err != nil {
		return nil, err
	}
	for _, f := range []float64{fx, fy, fz} {
		if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &GeometryError{
				Op:     "scale",
				Reason: fmt.Sprintf("scale factor must be positive and finite, got %v", f),
			}
		}
	}
	pts := make([]r3.Vec, len(m.Points))
	for i, p := range m.Points {
		pts[i] = r3.Vec{X: p.X * fx, Y: p.Y * fy, Z: p.Z * fz}
	}
	return &Mesh{Points: pts, Faces: m.Faces}, nil
}
