package scene

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/aerolab-data/windtunnel/internal/foam"
)

var (
	wallColor   = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	meshColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	lineColor   = color.RGBA{R: 44, G: 160, B: 44, A: 120}
	originColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// Render draws the accumulated elements as an orthographic projection and
// saves the result as a PNG at path.
func (b *Builder) Render(proj Projection, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("wind tunnel (%s view)", proj)
	hLabel, vLabel := proj.axisLabels()
	p.X.Label.Text = hLabel
	p.Y.Label.Text = vLabel

	for _, el := range b.elements {
		var err error
		switch e := el.(type) {
		case WallsElement:
			err = addWalls(p, proj, e)
		case MeshElement:
			err = addMesh(p, proj, e)
		case TubeElement:
			err = addStreamlines(p, proj, e)
		case SliceElement:
			err = addSlice(p, proj, e)
		case OriginMarker:
			err = addOrigin(p, proj)
		case CoefficientsLabel:
			p.Title.Text += "  " + coefficientsCaption(e.Coefficients)
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", el.label(), err)
		}
	}

	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save render: %w", err)
	}
	return nil
}

func coefficientsCaption(c foam.Coefficients) string {
	return fmt.Sprintf("Cd=%.3f Cl=%.3f Cm=%.3f", c.Drag, c.Lift, c.Moment)
}

// addWalls draws the tunnel bounding rectangle in the view plane.
func addWalls(p *plot.Plot, proj Projection, e WallsElement) error {
	w := e.Walls
	vMin, vMax := w.YMin, w.YMax
	if proj == ProjectionXZ {
		vMin, vMax = w.ZMin, w.ZMax
	}
	outline := plotter.XYs{
		{X: w.XMin, Y: vMin},
		{X: w.XMax, Y: vMin},
		{X: w.XMax, Y: vMax},
		{X: w.XMin, Y: vMax},
		{X: w.XMin, Y: vMin},
	}
	line, err := plotter.NewLine(outline)
	if err != nil {
		return err
	}
	line.Color = wallColor
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("walls", line)
	return nil
}

// addMesh draws each face as a closed outline. With a scalar field present,
// faces are filled with a color ramp over the face's mean field value; NaN
// field values fall back to the flat mesh color.
func addMesh(p *plot.Plot, proj Projection, e MeshElement) error {
	if e.Mesh == nil || e.Mesh.NumFaces() == 0 {
		return nil
	}
	lo, hi := fieldRange(e.Field)
	for _, face := range e.Mesh.Faces {
		pts := make(plotter.XYs, 0, len(face)+1)
		for _, idx := range face {
			x, y := proj.project(e.Mesh.Points[idx])
			pts = append(pts, plotter.XY{X: x, Y: y})
		}
		pts = append(pts, pts[0])

		poly, err := plotter.NewPolygon(pts)
		if err != nil {
			return err
		}
		poly.LineStyle.Color = meshColor
		poly.LineStyle.Width = vg.Points(0.5)
		if e.Field != nil {
			poly.Color = rampColor(faceFieldMean(e.Field, face), lo, hi)
		}
		p.Add(poly)
	}
	return nil
}

func addStreamlines(p *plot.Plot, proj Projection, e TubeElement) error {
	for _, line := range e.Lines {
		pts := make(plotter.XYs, 0, len(line))
		for _, v := range line {
			x, y := proj.project(v)
			pts = append(pts, plotter.XY{X: x, Y: y})
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.Color = lineColor
		l.Width = vg.Points(0.5)
		p.Add(l)
	}
	return nil
}

// addSlice draws the slice's cell centers as glyphs colored by pressure.
func addSlice(p *plot.Plot, proj Projection, e SliceElement) error {
	fs := e.Slice
	if fs == nil || len(fs.Points) == 0 {
		return nil
	}
	lo, hi := fieldRange(fs.Pressure)
	pts := make(plotter.XYs, len(fs.Points))
	for i, v := range fs.Points {
		x, y := proj.project(v)
		pts[i] = plotter.XY{X: x, Y: y}
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  rampColor(fs.Pressure[i], lo, hi),
			Radius: vg.Points(1.5),
			Shape:  draw.BoxGlyph{},
		}
	}
	p.Add(s)
	p.Legend.Add(e.label(), s)
	return nil
}

func addOrigin(p *plot.Plot, proj Projection) error {
	s, err := plotter.NewScatter(plotter.XYs{{X: 0, Y: 0}})
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = originColor
	s.GlyphStyle.Radius = vg.Points(3)
	p.Add(s)
	p.Legend.Add("origin", s)
	return nil
}

// fieldRange returns the finite min and max of a scalar field.
func fieldRange(field []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range field {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// faceFieldMean averages the finite field values at a face's corners.
func faceFieldMean(field []float64, face []int) float64 {
	var sum float64
	n := 0
	for _, idx := range face {
		if idx >= len(field) || math.IsNaN(field[idx]) {
			continue
		}
		sum += field[idx]
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// rampColor maps v in [lo, hi] onto a blue-to-red ramp. NaN and degenerate
// ranges fall back to the flat mesh color.
func rampColor(v, lo, hi float64) color.Color {
	if math.IsNaN(v) || hi <= lo {
		return meshColor
	}
	t := (v - lo) / (hi - lo)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: uint8(40 + 200*t),
		G: 60,
		B: uint8(240 - 200*t),
		A: 255,
	}
}

// RenderViews renders the plan (xy) and side (xz) views next to each other
// in the output directory using the given file stem.
func (b *Builder) RenderViews(dir, stem string) ([]string, error) {
	var paths []string
	for _, proj := range []Projection{ProjectionXY, ProjectionXZ} {
		path := fmt.Sprintf("%s/%s_%s.png", dir, stem, proj)
		if err := b.Render(proj, path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
