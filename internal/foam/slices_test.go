package foam

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestSliceDomainPlaneTable(t *testing.T) {
	tests := []struct {
		plane      FlowPlane
		xyHeight   float64
		wantNormal r3.Vec
		wantOrigin r3.Vec
	}{
		{PlaneXY, 2, r3.Vec{Z: 1}, r3.Vec{Z: 2}},
		{PlaneYZ, 2, r3.Vec{X: 1}, r3.Vec{}},
		{PlaneXZ, 2, r3.Vec{Y: 1}, r3.Vec{}},
	}
	dm := uniformFlowDomain()
	for _, tt := range tests {
		t.Run(string(tt.plane), func(t *testing.T) {
			fs, err := SliceDomain(dm, tt.plane, tt.xyHeight)
			if err != nil {
				t.Fatalf("SliceDomain: %v", err)
			}
			if fs.Normal != tt.wantNormal {
				t.Errorf("normal = %v, want %v", fs.Normal, tt.wantNormal)
			}
			if fs.Origin != tt.wantOrigin {
				t.Errorf("origin = %v, want %v", fs.Origin, tt.wantOrigin)
			}
			if len(fs.Points) == 0 {
				t.Fatal("slice selected no cells")
			}
			if len(fs.Points) != len(fs.Pressure) {
				t.Fatalf("%d points but %d pressure values", len(fs.Points), len(fs.Pressure))
			}
		})
	}
}

func TestSliceDomainSelectsPlaneCells(t *testing.T) {
	dm := uniformFlowDomain()
	// Unit grid spacing, so the xz plane picks the two cell layers
	// straddling y=0.
	fs, err := SliceDomain(dm, PlaneXZ, 0)
	if err != nil {
		t.Fatalf("SliceDomain: %v", err)
	}
	if len(fs.Points) != 400 {
		t.Fatalf("got %d cells, want 400", len(fs.Points))
	}
	for i, c := range fs.Points {
		if math.Abs(c.Y) > 0.5 {
			t.Fatalf("cell %d at y=%v is off the plane", i, c.Y)
		}
		if fs.Pressure[i] != c.X {
			t.Errorf("cell %d pressure = %v, want %v", i, fs.Pressure[i], c.X)
		}
	}
}

func TestSliceDomainXYPlaneHeight(t *testing.T) {
	dm := uniformFlowDomain()
	fs, err := SliceDomain(dm, PlaneXY, 2)
	if err != nil {
		t.Fatalf("SliceDomain: %v", err)
	}
	if len(fs.Points) == 0 {
		t.Fatal("slice selected no cells")
	}
	for i, c := range fs.Points {
		if math.Abs(c.Z-2) > 0.5 {
			t.Fatalf("cell %d at z=%v is off the z=2 plane", i, c.Z)
		}
	}
}

func TestSliceDomainInvalidPlane(t *testing.T) {
	if _, err := SliceDomain(uniformFlowDomain(), "xw", 0); err == nil {
		t.Fatal("expected error for invalid plane")
	}
}

func TestSliceDomainEmptyDomain(t *testing.T) {
	fs, err := SliceDomain(&DomainMesh{}, PlaneXZ, 0)
	if err != nil {
		t.Fatalf("SliceDomain: %v", err)
	}
	if len(fs.Points) != 0 {
		t.Fatalf("got %d cells from empty domain", len(fs.Points))
	}
}

func TestFlowSliceFromOutput(t *testing.T) {
	fs, dir := unitCubeCase(t)
	rec := NewReconstruction(fs, dir)

	slice, err := rec.FlowSlice(PlaneYZ)
	if err != nil {
		t.Fatalf("FlowSlice: %v", err)
	}
	// The single cell center (0.5 0.5 0.5) sits within half a cell
	// spacing of the x=0 plane.
	if len(slice.Points) != 1 {
		t.Fatalf("got %d cells, want 1", len(slice.Points))
	}
	if slice.Pressure[0] != 0 {
		t.Errorf("slice pressure = %v, want 0", slice.Pressure[0])
	}
}

func TestFlowSliceInvalidPlane(t *testing.T) {
	fs, dir := unitCubeCase(t)
	rec := NewReconstruction(fs, dir)
	if _, err := rec.FlowSlice("yx"); err == nil {
		t.Fatal("expected error for invalid plane")
	}
}
