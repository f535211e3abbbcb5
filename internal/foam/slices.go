package foam

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aerolab-data/windtunnel/internal/geometry"
)

// FlowPlane names one of the three canonical slicing planes through the
// flow domain.
type FlowPlane string

const (
	PlaneXY FlowPlane = "xy"
	PlaneYZ FlowPlane = "yz"
	PlaneXZ FlowPlane = "xz"
)

// FlowSlice is a planar sample of the domain pressure field: the cells the
// plane cuts through, with their centers and pressure values.
type FlowSlice struct {
	Plane    FlowPlane
	Origin   r3.Vec
	Normal   r3.Vec
	Points   []r3.Vec
	Pressure []float64
}

// FlowSlice samples the reconstructed domain's pressure field on a named
// plane. The xy plane sits at half the object height; yz and xz pass
// through the origin.
func (r *Reconstruction) FlowSlice(plane FlowPlane) (*FlowSlice, error) {
	domain, object, err := r.Meshes()
	if err != nil {
		return nil, err
	}
	b, err := geometry.Bounds(object.Mesh)
	if err != nil {
		return nil, err
	}
	return SliceDomain(domain, plane, (b.ZMax-b.ZMin)/2)
}

// SliceDomain selects the cells whose centers lie within half a cell
// spacing of the named plane. The spacing is estimated from the domain
// volume, assuming a roughly uniform grid. xyHeight positions the xy plane
// above the floor; the other planes pass through the origin.
func SliceDomain(domain *DomainMesh, plane FlowPlane, xyHeight float64) (*FlowSlice, error) {
	var origin, normal r3.Vec
	switch plane {
	case PlaneXY:
		normal = r3.Vec{Z: 1}
		origin = r3.Vec{Z: xyHeight}
	case PlaneYZ:
		normal = r3.Vec{X: 1}
	case PlaneXZ:
		normal = r3.Vec{Y: 1}
	default:
		return nil, fmt.Errorf("invalid flow plane %q (want xy, yz, or xz)", plane)
	}

	fs := &FlowSlice{Plane: plane, Origin: origin, Normal: normal}
	if len(domain.CellCenters) == 0 {
		return fs, nil
	}

	b := domain.Bounds
	volume := (b.XMax - b.XMin) * (b.YMax - b.YMin) * (b.ZMax - b.ZMin)
	spacing := math.Cbrt(volume / float64(len(domain.CellCenters)))
	tol := spacing / 2

	for i, c := range domain.CellCenters {
		if math.Abs(r3.Dot(r3.Sub(c, origin), normal)) <= tol {
			fs.Points = append(fs.Points, c)
			fs.Pressure = append(fs.Pressure, domain.Pressure[i])
		}
	}
	return fs, nil
}
