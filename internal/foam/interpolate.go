package foam

import (
	"bytes"
	"math"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aerolab-data/windtunnel/internal/geometry"
	"github.com/aerolab-data/windtunnel/internal/geometry/objfile"
	"github.com/aerolab-data/windtunnel/internal/tunnel"
)

// Interpolation tuning. Samples beyond interpolationRadius of a query point
// contribute nothing; within it they are blended with a gaussian falloff.
const (
	interpolationRadius    = 0.1
	interpolationSharpness = 10
)

// FieldMesh pairs a surface mesh with a per-point scalar field. Points with
// no sample within the interpolation radius carry NaN.
type FieldMesh struct {
	Mesh  *geometry.Mesh
	Field []float64
	Name  string
}

// InterpolateOntoInput reads the staged input geometry back from the case
// directory and interpolates the object surface pressure onto its points.
// The solver's reconstructed patch is a different discretization of the same
// surface, so values are gathered from face centers near each input point.
func (r *Reconstruction) InterpolateOntoInput() (*FieldMesh, error) {
	_, object, err := r.Meshes()
	if err != nil {
		return nil, err
	}

	objPath := filepath.Join(r.dir, tunnel.ObjectRelPath)
	data, err := r.fs.ReadFile(objPath)
	if err != nil {
		return nil, &OutputParseError{Path: objPath, Reason: "reading staged input geometry: " + err.Error()}
	}
	input, err := objfile.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	field := interpolateToPoints(input.Points, object.FaceCenters, object.Pressure)
	return &FieldMesh{Mesh: input, Field: field, Name: "p"}, nil
}

// interpolateToPoints computes a gaussian-weighted average of the sampled
// values at each query point. Queries with no sample inside the radius get
// NaN so renderers can distinguish uncovered geometry from a zero field.
func interpolateToPoints(queries, positions []r3.Vec, values []float64) []float64 {
	tree := newSampleTree(positions)
	out := make([]float64, len(queries))
	for i, q := range queries {
		out[i] = interpolateAt(tree, q, values)
	}
	return out
}

func interpolateAt(tree *kdtree.Tree, q r3.Vec, values []float64) float64 {
	keep := kdtree.NewDistKeeper(interpolationRadius * interpolationRadius)
	tree.NearestSet(keep, samplePoint{pos: q})

	var sum, weight float64
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		d := math.Sqrt(c.Dist)
		w := math.Exp(-square(interpolationSharpness * d / interpolationRadius))
		sum += w * values[c.Comparable.(samplePoint).idx]
		weight += w
	}
	if weight == 0 {
		return math.NaN()
	}
	return sum / weight
}

func square(x float64) float64 { return x * x }
