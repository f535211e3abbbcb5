package geometry

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const areaRes = 100 // ~2*res*res facets, well above the 1000-facet floor

func relErr(got, want float64) float64 {
	return math.Abs(got-want) / math.Abs(want)
}

func sliceArea(t *testing.T, m *Mesh, normal r3.Vec) float64 {
	t.Helper()
	b, err := Bounds(m)
	if err != nil {
		t.Fatalf("Bounds() error: %v", err)
	}
	curve, err := Slice(m, b.Center(), normal)
	if err != nil {
		t.Fatalf("Slice() error: %v", err)
	}
	return FillArea(curve)
}

func TestProjectedAreaSphere(t *testing.T) {
	for _, radius := range []float64{0.5, 1, 5, 30} {
		area := sliceArea(t, Sphere(radius, areaRes), r3.Vec{X: 1})
		want := math.Pi * radius * radius
		if relErr(area, want) > 0.02 {
			t.Errorf("sphere r=%v projected area = %v, want %v within 2%%", radius, area, want)
		}
	}
}

func TestProjectedAreaCylinderAxial(t *testing.T) {
	tests := []struct{ radius, height float64 }{
		{10, 20}, {10, 100}, {30, 10}, {9999, 10},
	}
	for _, tt := range tests {
		area := sliceArea(t, Cylinder(tt.radius, tt.height, 1000), r3.Vec{X: 1})
		want := math.Pi * tt.radius * tt.radius
		if relErr(area, want) > 0.02 {
			t.Errorf("cylinder r=%v h=%v axial area = %v, want %v within 2%%",
				tt.radius, tt.height, area, want)
		}
	}
}

func TestProjectedAreaCylinderLateral(t *testing.T) {
	tests := []struct{ radius, height float64 }{
		{10, 20}, {10, 100}, {30, 10}, {9999, 10},
	}
	for _, tt := range tests {
		area := sliceArea(t, Cylinder(tt.radius, tt.height, 1000), r3.Vec{Y: 1})
		want := 2 * tt.radius * tt.height
		if relErr(area, want) > 0.02 {
			t.Errorf("cylinder r=%v h=%v lateral area = %v, want %v within 2%%",
				tt.radius, tt.height, area, want)
		}
	}
}

func TestProjectedAreaUnitCube(t *testing.T) {
	area := sliceArea(t, UnitCube(), r3.Vec{X: 1})
	if relErr(area, 1) > 0.01 {
		t.Errorf("unit cube projected area = %v, want 1.0 within 1%%", area)
	}
}

func TestSliceMissingPlaneIsEmpty(t *testing.T) {
	curve, err := Slice(UnitCube(), r3.Vec{X: 10}, r3.Vec{X: 1})
	if err != nil {
		t.Fatalf("Slice() error: %v", err)
	}
	if !curve.Empty() {
		t.Errorf("plane outside mesh: curve has %d loops, want empty", curve.NumLoops())
	}
	if area := FillArea(curve); area != 0 {
		t.Errorf("FillArea(empty) = %v, want 0", area)
	}
}

func TestSliceSphereIsSingleLoop(t *testing.T) {
	curve, err := Slice(Sphere(1, 24), r3.Vec{}, r3.Vec{X: 1})
	if err != nil {
		t.Fatalf("Slice() error: %v", err)
	}
	if curve.NumLoops() != 1 {
		t.Errorf("sphere slice loops = %d, want 1", curve.NumLoops())
	}
}

func TestSliceErrors(t *testing.T) {
	if _, err := Slice(&Mesh{}, r3.Vec{}, r3.Vec{X: 1}); !IsGeometryError(err) {
		t.Errorf("Slice(empty mesh) error = %v, want GeometryError", err)
	}
	if _, err := Slice(UnitCube(), r3.Vec{}, r3.Vec{}); !IsGeometryError(err) {
		t.Errorf("Slice(zero normal) error = %v, want GeometryError", err)
	}
}
