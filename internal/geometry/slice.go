package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// PlanarCurve is the outline produced by intersecting a mesh surface with an
// infinite plane. It may contain several closed loops (for example a slice
// through both wheels of a vehicle). An empty curve is a valid result: the
// plane simply does not intersect the mesh.
type PlanarCurve struct {
	// loops are closed polygons in the 2D in-plane basis.
	loops [][]point2
}

type point2 struct{ u, v float64 }

// Empty reports whether the plane missed the mesh entirely.
func (c PlanarCurve) Empty() bool { return len(c.loops) == 0 }

// NumLoops returns the number of closed loops in the outline.
func (c PlanarCurve) NumLoops() int { return len(c.loops) }

// endpointKey identifies a slice intersection point exactly. Crossings on a
// mesh edge are keyed by the canonical (low, high) point index pair; a mesh
// vertex lying on the plane is keyed by (index, -1). Keying by topology
// instead of coordinates makes loop stitching immune to floating-point noise.
type endpointKey struct{ a, b int }

type sliceSegment struct {
	ka, kb endpointKey
	pa, pb point2
}

// Slice intersects the mesh surface with the infinite plane through origin
// with the given normal and stitches the resulting segments into closed
// loops. Polygonal faces are fan-triangulated before intersection.
func Slice(m *Mesh, origin, normal r3.Vec) (PlanarCurve, error) {
	if err := m.validate("slice"); err != nil {
		return PlanarCurve{}, err
	}
	if r3.Norm(normal) == 0 {
		return PlanarCurve{}, &GeometryError{Op: "slice", Reason: "zero-length plane normal"}
	}
	n := r3.Unit(normal)
	u, v := planeBasis(n)

	// Signed distance of every point from the plane. Points exactly on the
	// plane are nudged to the positive side so each triangle yields at most
	// one well-formed segment.
	dist := make([]float64, len(m.Points))
	for i, p := range m.Points {
		d := r3.Dot(r3.Sub(p, origin), n)
		if d == 0 {
			d = math.SmallestNonzeroFloat64
		}
		dist[i] = d
	}

	inPlane := func(p r3.Vec) point2 {
		rel := r3.Sub(p, origin)
		return point2{u: r3.Dot(rel, u), v: r3.Dot(rel, v)}
	}

	var segs []sliceSegment
	for _, face := range m.Faces {
		if len(face) < 3 {
			continue
		}
		for k := 1; k < len(face)-1; k++ {
			i0, i1, i2 := face[0], face[k], face[k+1]
			seg, ok := triangleCrossing(m, dist, i0, i1, i2, inPlane)
			if ok {
				segs = append(segs, seg)
			}
		}
	}
	if len(segs) == 0 {
		return PlanarCurve{}, nil
	}
	return PlanarCurve{loops: stitchLoops(segs)}, nil
}

// planeBasis returns two orthonormal vectors spanning the plane with unit
// normal n.
func planeBasis(n r3.Vec) (u, v r3.Vec) {
	ref := r3.Vec{X: 1}
	if math.Abs(n.X) > 0.9 {
		ref = r3.Vec{Y: 1}
	}
	u = r3.Unit(r3.Cross(n, ref))
	v = r3.Cross(n, u)
	return u, v
}

// triangleCrossing intersects one triangle with the plane. Exactly two of
// the three edges cross when the vertices do not all lie on one side.
func triangleCrossing(m *Mesh, dist []float64, i0, i1, i2 int, inPlane func(r3.Vec) point2) (sliceSegment, bool) {
	idx := [3]int{i0, i1, i2}
	pos := 0
	for _, i := range idx {
		if dist[i] > 0 {
			pos++
		}
	}
	if pos == 0 || pos == 3 {
		return sliceSegment{}, false
	}

	var keys []endpointKey
	var pts []point2
	for e := 0; e < 3; e++ {
		ia, ib := idx[e], idx[(e+1)%3]
		da, db := dist[ia], dist[ib]
		if (da > 0) == (db > 0) {
			continue
		}
		// Evaluate the crossing from the canonical low-index endpoint so
		// both triangles sharing this edge compute the same coordinates.
		if ia > ib {
			ia, ib = ib, ia
			da, db = db, da
		}
		t := da / (da - db)
		p := r3.Add(m.Points[ia], r3.Scale(t, r3.Sub(m.Points[ib], m.Points[ia])))
		keys = append(keys, endpointKey{a: ia, b: ib})
		pts = append(pts, inPlane(p))
	}
	if len(keys) != 2 {
		return sliceSegment{}, false
	}
	return sliceSegment{ka: keys[0], kb: keys[1], pa: pts[0], pb: pts[1]}, true
}

// stitchLoops chains segments that share endpoint keys into closed loops.
// Chains that fail to close (non-watertight input) are closed implicitly.
func stitchLoops(segs []sliceSegment) [][]point2 {
	adj := make(map[endpointKey][]int)
	for i, s := range segs {
		adj[s.ka] = append(adj[s.ka], i)
		adj[s.kb] = append(adj[s.kb], i)
	}
	used := make([]bool, len(segs))
	var loops [][]point2

	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		loop := []point2{segs[start].pa, segs[start].pb}
		first := segs[start].ka
		cur := segs[start].kb
		for cur != first {
			next := -1
			for _, j := range adj[cur] {
				if !used[j] {
					next = j
					break
				}
			}
			if next < 0 {
				break
			}
			used[next] = true
			if segs[next].ka == cur {
				cur = segs[next].kb
				loop = append(loop, segs[next].pb)
			} else {
				cur = segs[next].ka
				loop = append(loop, segs[next].pa)
			}
		}
		if len(loop) >= 3 {
			loops = append(loops, loop)
		}
	}
	return loops
}

// FillArea fills each closed loop of the curve and returns the summed area.
// This approximates the area of the filled slice (the original use is the
// projected frontal area of an object); callers accept the approximation in
// exchange for speed. An empty curve has zero area and is not an error.
func FillArea(c PlanarCurve) float64 {
	var total float64
	for _, loop := range c.loops {
		total += math.Abs(shoelace(loop))
	}
	return total
}

// shoelace returns the signed area of a closed polygon.
func shoelace(loop []point2) float64 {
	var s float64
	for i, p := range loop {
		q := loop[(i+1)%len(loop)]
		s += p.u*q.v - q.u*p.v
	}
	return s / 2
}
