package foam

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aerolab-data/windtunnel/internal/geometry"
)

// Streamline defaults. The seed sphere sits just ahead of a unit-normalized
// object; the tube radius renders well against tunnel-scale geometry.
const (
	DefaultSeedRadius = 1.1
	DefaultSeedPoints = 100
	DefaultTubeRadius = 0.005
	defaultTubeSides  = 8
	maxTraceSteps     = 10000
	stagnationSpeed   = 1e-9
)

// SeedSphere describes a spherical shell of streamline start positions.
type SeedSphere struct {
	Center r3.Vec
	Radius float64
	Points int
}

// DefaultSeedSphere seeds around the origin, where placed objects sit.
func DefaultSeedSphere() SeedSphere {
	return SeedSphere{Radius: DefaultSeedRadius, Points: DefaultSeedPoints}
}

// Seeds returns the seed positions. Points are laid out on a golden-angle
// spiral so repeated runs trace identical lines.
func (s SeedSphere) Seeds() []r3.Vec {
	n := s.Points
	if n <= 0 {
		n = DefaultSeedPoints
	}
	golden := math.Pi * (3 - math.Sqrt(5))
	seeds := make([]r3.Vec, n)
	for i := range seeds {
		z := 1 - 2*(float64(i)+0.5)/float64(n)
		ring := math.Sqrt(1 - z*z)
		theta := golden * float64(i)
		seeds[i] = r3.Add(s.Center, r3.Scale(s.Radius, r3.Vec{
			X: ring * math.Cos(theta),
			Y: ring * math.Sin(theta),
			Z: z,
		}))
	}
	return seeds
}

// Polyline is an ordered sequence of points along one streamline.
type Polyline []r3.Vec

// StreamlineOptions control tracing. Zero values select defaults; MaxTime
// defaults to the run's final time step so lines span the simulated window.
type StreamlineOptions struct {
	Seed       SeedSphere
	MaxTime    float64
	StepLength float64
}

// Streamlines traces velocity-field streamlines through the reconstructed
// domain from the configured seed sphere.
func (r *Reconstruction) Streamlines(opts StreamlineOptions) ([]Polyline, error) {
	domain, _, err := r.Meshes()
	if err != nil {
		return nil, err
	}
	if opts.MaxTime <= 0 {
		steps, err := r.TimeSteps()
		if err != nil {
			return nil, err
		}
		opts.MaxTime = float64(steps)
	}
	return TraceStreamlines(domain, opts), nil
}

// TraceStreamlines integrates midpoint (RK2) streamlines through the domain
// velocity field. Each cell's velocity is treated as constant; a line ends
// when it leaves the domain bounds, stalls, or reaches the time limit.
func TraceStreamlines(domain *DomainMesh, opts StreamlineOptions) []Polyline {
	if len(domain.CellCenters) == 0 {
		return nil
	}
	tree := newSampleTree(domain.CellCenters)

	step := opts.StepLength
	if step <= 0 {
		step = defaultStepLength(domain.Bounds)
	}
	if opts.Seed.Radius <= 0 {
		opts.Seed = DefaultSeedSphere()
	}

	var lines []Polyline
	for _, seed := range opts.Seed.Seeds() {
		line := traceOne(tree, domain, seed, step, opts.MaxTime)
		if len(line) > 1 {
			lines = append(lines, line)
		}
	}
	return lines
}

// defaultStepLength ties spatial resolution to the domain size.
func defaultStepLength(b geometry.Box) float64 {
	d := r3.Vec{X: b.XMax - b.XMin, Y: b.YMax - b.YMin, Z: b.ZMax - b.ZMin}
	return r3.Norm(d) / 200
}

func traceOne(tree *kdtree.Tree, domain *DomainMesh, start r3.Vec, step, maxTime float64) Polyline {
	if !inBox(domain.Bounds, start) {
		return nil
	}
	line := Polyline{start}
	pos := start
	elapsed := 0.0
	for i := 0; i < maxTraceSteps; i++ {
		v1 := velocityAt(tree, domain, pos)
		s1 := r3.Norm(v1)
		if s1 < stagnationSpeed {
			break
		}
		mid := r3.Add(pos, r3.Scale(step/(2*s1), v1))
		if !inBox(domain.Bounds, mid) {
			break
		}
		v2 := velocityAt(tree, domain, mid)
		s2 := r3.Norm(v2)
		if s2 < stagnationSpeed {
			break
		}
		next := r3.Add(pos, r3.Scale(step/s2, v2))
		if !inBox(domain.Bounds, next) {
			break
		}
		elapsed += step / s2
		if maxTime > 0 && elapsed > maxTime {
			break
		}
		pos = next
		line = append(line, pos)
	}
	return line
}

func velocityAt(tree *kdtree.Tree, domain *DomainMesh, p r3.Vec) r3.Vec {
	idx, _ := nearestIndex(tree, p)
	return domain.Velocity[idx]
}

func inBox(b geometry.Box, p r3.Vec) bool {
	return p.X >= b.XMin && p.X <= b.XMax &&
		p.Y >= b.YMin && p.Y <= b.YMax &&
		p.Z >= b.ZMin && p.Z <= b.ZMax
}

// Tube sweeps a circular cross-section along a streamline, producing a
// renderable surface mesh. Lines shorter than two points yield nil.
func Tube(line Polyline, radius float64, sides int) *geometry.Mesh {
	if len(line) < 2 {
		return nil
	}
	if radius <= 0 {
		radius = DefaultTubeRadius
	}
	if sides < 3 {
		sides = defaultTubeSides
	}

	mesh := &geometry.Mesh{}
	for i, p := range line {
		t := tangentAt(line, i)
		u, v := frameFor(t)
		for k := 0; k < sides; k++ {
			ang := 2 * math.Pi * float64(k) / float64(sides)
			offset := r3.Add(r3.Scale(radius*math.Cos(ang), u), r3.Scale(radius*math.Sin(ang), v))
			mesh.Points = append(mesh.Points, r3.Add(p, offset))
		}
	}
	for i := 0; i < len(line)-1; i++ {
		a := i * sides
		b := (i + 1) * sides
		for k := 0; k < sides; k++ {
			k2 := (k + 1) % sides
			mesh.Faces = append(mesh.Faces, []int{a + k, a + k2, b + k2, b + k})
		}
	}
	return mesh
}

func tangentAt(line Polyline, i int) r3.Vec {
	switch {
	case i == 0:
		return r3.Sub(line[1], line[0])
	case i == len(line)-1:
		return r3.Sub(line[i], line[i-1])
	default:
		return r3.Sub(line[i+1], line[i-1])
	}
}

// frameFor builds two unit vectors orthogonal to t. The reference axis flips
// near-parallel tangents to keep the cross products well conditioned.
func frameFor(t r3.Vec) (u, v r3.Vec) {
	ref := r3.Vec{Z: 1}
	if math.Abs(r3.Unit(t).Z) > 0.9 {
		ref = r3.Vec{X: 1}
	}
	u = r3.Unit(r3.Cross(t, ref))
	v = r3.Unit(r3.Cross(t, u))
	return u, v
}
