package tunnel

import (
	"fmt"
	"log"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aerolab-data/windtunnel/internal/geometry"
)

// PlacementOptions configure the object placement pipeline. The zero value
// applies no rotation, no centering, and no normalization.
type PlacementOptions struct {
	// AxisCorrect rotates the object 90 degrees about x before placement,
	// for input conventions whose "up" axis is y rather than z.
	AxisCorrect bool

	// RotateZDegrees rotates the object about z to simulate a flow
	// incidence angle. Zero is a true no-op.
	RotateZDegrees float64

	// Center translates the object so its bounding-box center sits on the
	// tunnel's x=0, y=0 reference line and its lowest point rests on the
	// tunnel floor.
	Center bool

	// Normalize scales the object uniformly so it fits the tunnel's
	// maximum object dimensions on all three axes.
	Normalize bool

	// Verbose enables progress logging for this invocation only; the
	// pipeline never touches process-wide logging state.
	Verbose bool
}

// ObjectProperties records the derived scalars of a placed object together
// with the exact transform parameters applied, sufficient to invert the
// placement and map solver-space results back onto the original mesh
// coordinates.
type ObjectProperties struct {
	// Area is the projected frontal area of the placed object on the
	// inlet (x-normal) plane.
	Area float64

	// Length is the streamwise (x) extent of the placed object.
	Length float64

	// Displacement is the translation applied during centering. Zero when
	// centering was disabled.
	Displacement r3.Vec

	// ScalingFactor is the uniform factor applied during normalization.
	// Reported as 1 when normalization was disabled, so inversion logic is
	// uniform regardless of configuration.
	ScalingFactor float64

	// RotateZDegrees is the yaw angle applied about z.
	RotateZDegrees float64
}

// PlaceObject runs the placement pipeline on mesh: centering, yaw rotation,
// and normalization in that fixed order, then computes the projected frontal
// area and streamwise length of the placed object. The input mesh is not
// modified.
func (t *Tunnel) PlaceObject(mesh *geometry.Mesh, opts PlacementOptions) (*geometry.Mesh, ObjectProperties, error) {
	props := ObjectProperties{
		ScalingFactor:  1,
		RotateZDegrees: opts.RotateZDegrees,
	}

	placed := mesh
	var err error

	if opts.AxisCorrect {
		placed, err = geometry.RotateAboutAxis(placed, r3.Vec{X: 1}, 90)
		if err != nil {
			return nil, ObjectProperties{}, err
		}
	}

	if opts.Center {
		placed, props.Displacement, err = moveToOrigin(placed, t.Walls.ZMin)
		if err != nil {
			return nil, ObjectProperties{}, err
		}
		if opts.Verbose {
			log.Printf("placement: centered object, displacement (%.4f, %.4f, %.4f)",
				props.Displacement.X, props.Displacement.Y, props.Displacement.Z)
		}
	}

	if opts.RotateZDegrees != 0 {
		placed, err = geometry.RotateZ(placed, opts.RotateZDegrees)
		if err != nil {
			return nil, ObjectProperties{}, err
		}
		if opts.Verbose {
			log.Printf("placement: rotated object %.2f degrees about z", opts.RotateZDegrees)
		}
	}

	if opts.Normalize {
		maxL, maxW, maxH := t.MaxObjectDimensions()
		props.ScalingFactor, err = scalingFactor(placed, maxL, maxW, maxH)
		if err != nil {
			return nil, ObjectProperties{}, err
		}
		placed, err = geometry.Scale(placed, props.ScalingFactor)
		if err != nil {
			return nil, ObjectProperties{}, err
		}
		if opts.Verbose {
			log.Printf("placement: normalized object, scaling factor %.6f", props.ScalingFactor)
		}
	}

	props.Area, err = ProjectedArea(placed, r3.Vec{X: 1})
	if err != nil {
		return nil, ObjectProperties{}, err
	}
	props.Length, err = geometry.LengthAlongAxis(placed, geometry.AxisX)
	if err != nil {
		return nil, ObjectProperties{}, err
	}
	return placed, props, nil
}

// moveToOrigin centers the mesh on the x=0, y=0 reference line and rests its
// lowest point on the tunnel floor. It returns the displacement applied,
// which must be retained to invert the placement exactly.
func moveToOrigin(m *geometry.Mesh, floor float64) (*geometry.Mesh, r3.Vec, error) {
	b, err := geometry.Bounds(m)
	if err != nil {
		return nil, r3.Vec{}, err
	}
	c := b.Center()
	d := r3.Vec{X: -c.X, Y: -c.Y, Z: floor - b.ZMin}
	moved, err := geometry.Translate(m, d)
	if err != nil {
		return nil, r3.Vec{}, err
	}
	return moved, d, nil
}

// scalingFactor returns the most restrictive of the three per-axis ratios
// target/current, guaranteeing the scaled object fits all three target
// bounds simultaneously at the cost of possibly under-filling two of them.
func scalingFactor(m *geometry.Mesh, maxL, maxW, maxH float64) (float64, error) {
	b, err := geometry.Bounds(m)
	if err != nil {
		return 0, err
	}
	factor := 0.0
	for i, a := range []geometry.Axis{geometry.AxisX, geometry.AxisY, geometry.AxisZ} {
		extent := b.Extent(a)
		if extent == 0 {
			return 0, &geometry.GeometryError{
				Op:     "normalize",
				Reason: fmt.Sprintf("mesh has zero extent along %v", a),
			}
		}
		ratio := []float64{maxL, maxW, maxH}[i] / extent
		if i == 0 || ratio < factor {
			factor = ratio
		}
	}
	return factor, nil
}

// ProjectedArea slices the mesh at its bounding-box center with the given
// plane normal, fills the outline, and returns the resulting area. This
// approximates the silhouette projection; an empty slice yields zero.
func ProjectedArea(m *geometry.Mesh, normal r3.Vec) (float64, error) {
	b, err := geometry.Bounds(m)
	if err != nil {
		return 0, err
	}
	curve, err := geometry.Slice(m, b.Center(), normal)
	if err != nil {
		return 0, err
	}
	return geometry.FillArea(curve), nil
}

// PlaneNormal maps a named projection plane label to its normal vector. It
// is a convenience wrapper over the canonical vector signature of
// ProjectedArea, not a second code path.
func PlaneNormal(name string) (r3.Vec, error) {
	switch strings.ToUpper(name) {
	case "X":
		return r3.Vec{X: 1}, nil
	case "Y":
		return r3.Vec{Y: 1}, nil
	case "Z":
		return r3.Vec{Z: 1}, nil
	}
	return r3.Vec{}, &ConfigurationError{
		Field:  "plane",
		Reason: fmt.Sprintf("unknown projection plane %q, want X, Y or Z", name),
	}
}

// Invert applies the inverse placement transform to a mesh in solver-space
// coordinates: inverse scale, inverse rotation, then negated displacement.
// It exactly undoes the centering, rotation, and normalization recorded in
// the properties.
func (p ObjectProperties) Invert(m *geometry.Mesh) (*geometry.Mesh, error) {
	if p.ScalingFactor <= 0 {
		return nil, &geometry.GeometryError{
			Op:     "invert",
			Reason: fmt.Sprintf("scaling factor must be positive, got %v", p.ScalingFactor),
		}
	}
	out := m
	var err error
	if p.ScalingFactor != 1 {
		out, err = geometry.Scale(out, 1/p.ScalingFactor)
		if err != nil {
			return nil, err
		}
	}
	out, err = geometry.RotateZ(out, -p.RotateZDegrees)
	if err != nil {
		return nil, err
	}
	return geometry.Translate(out, r3.Scale(-1, p.Displacement))
}
