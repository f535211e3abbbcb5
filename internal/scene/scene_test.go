package scene

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aerolab-data/windtunnel/internal/foam"
	"github.com/aerolab-data/windtunnel/internal/geometry"
	"github.com/aerolab-data/windtunnel/internal/tunnel"
)

func TestBuilderCollectsElements(t *testing.T) {
	b := NewBuilder().
		AddWalls(tunnel.Default().Walls).
		AddMesh("object", geometry.UnitCube()).
		AddOriginMarker().
		AddCoefficients(foam.Coefficients{Drag: 0.3})

	if b.Len() != 4 {
		t.Fatalf("got %d elements, want 4", b.Len())
	}
	if _, ok := b.Elements()[0].(WallsElement); !ok {
		t.Errorf("element 0 is %T, want WallsElement", b.Elements()[0])
	}
	if m, ok := b.Elements()[1].(MeshElement); !ok || m.Name != "object" {
		t.Errorf("element 1 = %#v, want object MeshElement", b.Elements()[1])
	}
}

func TestProjectionMapping(t *testing.T) {
	v := r3.Vec{X: 1, Y: 2, Z: 3}
	if x, y := ProjectionXY.project(v); x != 1 || y != 2 {
		t.Errorf("xy projection = (%v, %v), want (1, 2)", x, y)
	}
	if x, y := ProjectionXZ.project(v); x != 1 || y != 3 {
		t.Errorf("xz projection = (%v, %v), want (1, 3)", x, y)
	}
}

func TestRenderWritesPNG(t *testing.T) {
	dir := t.TempDir()
	b := NewBuilder().
		AddWalls(tunnel.Default().Walls).
		AddMesh("object", geometry.UnitCube()).
		AddStreamlines([]foam.Polyline{{{X: -2}, {X: -1}, {X: 0}}}).
		AddOriginMarker().
		AddCoefficients(foam.Coefficients{Drag: 0.354, Lift: 0.3, Moment: 0.038})

	paths, err := b.RenderViews(dir, "scene")
	if err != nil {
		t.Fatalf("RenderViews: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("got %d renders, want 2", len(paths))
	}
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if fi.Size() == 0 {
			t.Errorf("render %s is empty", p)
		}
	}
	if filepath.Base(paths[0]) != "scene_xy.png" || filepath.Base(paths[1]) != "scene_xz.png" {
		t.Errorf("render paths = %v, want scene_xy.png and scene_xz.png", paths)
	}
}

func TestRenderFieldMesh(t *testing.T) {
	cube := geometry.UnitCube()
	field := make([]float64, cube.NumPoints())
	for i := range field {
		field[i] = float64(i)
	}
	b := NewBuilder().AddFieldMesh(&foam.FieldMesh{Mesh: cube, Field: field, Name: "p"})

	path := filepath.Join(t.TempDir(), "field.png")
	if err := b.Render(ProjectionXZ, path); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("stat render: %v", err)
	}
}

func TestRenderFlowSlice(t *testing.T) {
	fs := &foam.FlowSlice{
		Plane:  foam.PlaneXZ,
		Normal: r3.Vec{Y: 1},
		Points: []r3.Vec{
			{X: -1, Z: 1}, {X: 0, Z: 1}, {X: 1, Z: 1},
		},
		Pressure: []float64{-0.5, 0, 0.5},
	}
	b := NewBuilder().AddFlowSlice(fs)

	if b.Len() != 1 {
		t.Fatalf("got %d elements, want 1", b.Len())
	}
	el, ok := b.Elements()[0].(SliceElement)
	if !ok {
		t.Fatalf("element 0 is %T, want SliceElement", b.Elements()[0])
	}
	if el.label() != "slice xz" {
		t.Errorf("label = %q, want \"slice xz\"", el.label())
	}

	path := filepath.Join(t.TempDir(), "slice.png")
	if err := b.Render(ProjectionXZ, path); err != nil {
		t.Fatalf("Render: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat render: %v", err)
	}
	if fi.Size() == 0 {
		t.Error("render is empty")
	}
}

func TestRenderEmptyFlowSlice(t *testing.T) {
	b := NewBuilder().AddFlowSlice(&foam.FlowSlice{Plane: foam.PlaneXY})
	path := filepath.Join(t.TempDir(), "empty.png")
	if err := b.Render(ProjectionXY, path); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestCoefficientHistoryHTML(t *testing.T) {
	rows := []foam.Coefficients{
		{TimeStep: 1, Moment: 0.1, Drag: 0.9, Lift: 0.4, FrontLift: 0.3, RearLift: 0.1},
		{TimeStep: 2, Moment: 0.05, Drag: 0.5, Lift: 0.35, FrontLift: 0.25, RearLift: 0.1},
	}
	var buf bytes.Buffer
	if err := CoefficientHistoryHTML(&buf, rows); err != nil {
		t.Fatalf("CoefficientHistoryHTML: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"Force Coefficient Convergence", "Drag", "Rear Lift"} {
		if !strings.Contains(html, want) {
			t.Errorf("chart HTML missing %q", want)
		}
	}
}

func TestCoefficientHistoryHTMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := CoefficientHistoryHTML(&buf, nil); err == nil {
		t.Fatal("expected error for empty series")
	}
}
