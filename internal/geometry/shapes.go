package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Shape generators used by tests, tooling, and streamline seeding. All
// shapes are centered at the origin.

// UnitCube returns an axis-aligned cube with side length 1, built from six
// quadrilateral faces.
func UnitCube() *Mesh {
	h := 0.5
	pts := []r3.Vec{
		{X: -h, Y: -h, Z: -h},
		{X: h, Y: -h, Z: -h},
		{X: h, Y: h, Z: -h},
		{X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h},
		{X: h, Y: -h, Z: h},
		{X: h, Y: h, Z: h},
		{X: -h, Y: h, Z: h},
	}
	faces := [][]int{
		{0, 3, 2, 1}, // bottom
		{4, 5, 6, 7}, // top
		{0, 1, 5, 4},
		{1, 2, 6, 5},
		{2, 3, 7, 6},
		{3, 0, 4, 7},
	}
	return &Mesh{Points: pts, Faces: faces}
}

// Sphere returns a triangulated UV sphere with poles on the z axis.
// res controls both the longitudinal and latitudinal resolution; the result
// has roughly 2*res*res triangular facets.
func Sphere(radius float64, res int) *Mesh {
	if res < 3 {
		res = 3
	}
	var pts []r3.Vec
	// Poles first, then res-1 latitude rings of res points each.
	pts = append(pts, r3.Vec{Z: radius}, r3.Vec{Z: -radius})
	for i := 1; i < res; i++ {
		phi := math.Pi * float64(i) / float64(res)
		for j := 0; j < res; j++ {
			theta := 2 * math.Pi * float64(j) / float64(res)
			pts = append(pts, r3.Vec{
				X: radius * math.Sin(phi) * math.Cos(theta),
				Y: radius * math.Sin(phi) * math.Sin(theta),
				Z: radius * math.Cos(phi),
			})
		}
	}
	ring := func(i, j int) int { return 2 + (i-1)*res + j%res }

	var faces [][]int
	for j := 0; j < res; j++ {
		faces = append(faces, []int{0, ring(1, j), ring(1, j+1)})
		faces = append(faces, []int{1, ring(res-1, j+1), ring(res-1, j)})
	}
	for i := 1; i < res-1; i++ {
		for j := 0; j < res; j++ {
			a, b := ring(i, j), ring(i, j+1)
			c, d := ring(i+1, j), ring(i+1, j+1)
			faces = append(faces, []int{a, c, d})
			faces = append(faces, []int{a, d, b})
		}
	}
	return &Mesh{Points: pts, Faces: faces}
}

// Cylinder returns a capped triangulated cylinder whose axis lies along x,
// with the given radius and height (extent along x). res is the number of
// points around the circumference.
func Cylinder(radius, height float64, res int) *Mesh {
	if res < 3 {
		res = 3
	}
	h := height / 2
	var pts []r3.Vec
	// Cap centers first, then the two rings.
	pts = append(pts, r3.Vec{X: -h}, r3.Vec{X: h})
	for _, x := range []float64{-h, h} {
		for j := 0; j < res; j++ {
			theta := 2 * math.Pi * float64(j) / float64(res)
			pts = append(pts, r3.Vec{
				X: x,
				Y: radius * math.Sin(theta),
				Z: radius * math.Cos(theta),
			})
		}
	}
	lo := func(j int) int { return 2 + j%res }
	hi := func(j int) int { return 2 + res + j%res }

	var faces [][]int
	for j := 0; j < res; j++ {
		// Side wall.
		faces = append(faces, []int{lo(j), hi(j), hi(j + 1)})
		faces = append(faces, []int{lo(j), hi(j + 1), lo(j + 1)})
		// End caps, fanned from the cap centers.
		faces = append(faces, []int{0, lo(j + 1), lo(j)})
		faces = append(faces, []int{1, hi(j), hi(j + 1)})
	}
	return &Mesh{Points: pts, Faces: faces}
}
