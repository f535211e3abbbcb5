package foam

import (
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// samplePoint is a field sample position tagged with its index into the
// owning sample slice. It implements kdtree.Comparable so samples can be
// indexed for nearest-neighbor queries; distances are squared Euclidean.
type samplePoint struct {
	pos r3.Vec
	idx int
}

func (p samplePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(samplePoint)
	switch d {
	case 0:
		return p.pos.X - q.pos.X
	case 1:
		return p.pos.Y - q.pos.Y
	default:
		return p.pos.Z - q.pos.Z
	}
}

func (p samplePoint) Dims() int { return 3 }

func (p samplePoint) Distance(c kdtree.Comparable) float64 {
	d := r3.Sub(p.pos, c.(samplePoint).pos)
	return r3.Dot(d, d)
}

type samplePoints []samplePoint

func (p samplePoints) Index(i int) kdtree.Comparable { return p[i] }
func (p samplePoints) Len() int                      { return len(p) }
func (p samplePoints) Pivot(d kdtree.Dim) int {
	return samplePlane{samplePoints: p, Dim: d}.Pivot()
}
func (p samplePoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

// samplePlane implements the sorting required by kdtree construction.
type samplePlane struct {
	kdtree.Dim
	samplePoints
}

func (p samplePlane) Less(i, j int) bool {
	a, b := p.samplePoints[i].pos, p.samplePoints[j].pos
	switch p.Dim {
	case 0:
		return a.X < b.X
	case 1:
		return a.Y < b.Y
	default:
		return a.Z < b.Z
	}
}

func (p samplePlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

func (p samplePlane) Slice(start, end int) kdtree.SortSlicer {
	p.samplePoints = p.samplePoints[start:end]
	return p
}

func (p samplePlane) Swap(i, j int) {
	p.samplePoints[i], p.samplePoints[j] = p.samplePoints[j], p.samplePoints[i]
}

// newSampleTree indexes positions for nearest-neighbor lookup.
func newSampleTree(positions []r3.Vec) *kdtree.Tree {
	samples := make(samplePoints, len(positions))
	for i, pos := range positions {
		samples[i] = samplePoint{pos: pos, idx: i}
	}
	return kdtree.New(samples, false)
}

// nearestIndex returns the index of the sample nearest to q and the squared
// distance to it.
func nearestIndex(tree *kdtree.Tree, q r3.Vec) (int, float64) {
	got, dist := tree.Nearest(samplePoint{pos: q})
	return got.(samplePoint).idx, dist
}
