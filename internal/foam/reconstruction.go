package foam

import (
	"fmt"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aerolab-data/windtunnel/internal/fsutil"
	"github.com/aerolab-data/windtunnel/internal/geometry"
)

// DomainMesh is the volumetric flow region at the converged time step: one
// center, one velocity vector, and one pressure value per cell. It is a
// read-only view used for streamline tracing and flow slicing.
type DomainMesh struct {
	CellCenters []r3.Vec
	Velocity    []r3.Vec
	Pressure    []float64
	Bounds      geometry.Box
}

// ObjectMesh is the boundary region of the inserted object with the
// solver-computed pressure attached per face. Read-only.
type ObjectMesh struct {
	Mesh        *geometry.Mesh
	FaceCenters []r3.Vec
	Pressure    []float64
}

// Reconstruction reads a solver output directory lazily: the first access
// parses the time series, the mesh, and the fields, and the results are
// cached for the lifetime of the value. It is not safe for concurrent use;
// each pipeline invocation owns its own Reconstruction.
type Reconstruction struct {
	fs  fsutil.FileSystem
	dir string

	timeSteps int
	hasTime   bool

	domain *DomainMesh
	object *ObjectMesh
}

// NewReconstruction wraps a solver output directory. Nothing is read until
// the first accessor call.
func NewReconstruction(fs fsutil.FileSystem, outputDir string) *Reconstruction {
	return &Reconstruction{fs: fs, dir: outputDir}
}

// Dir returns the output directory the reconstruction reads from.
func (r *Reconstruction) Dir() string { return r.dir }

// TimeSteps returns the solver's last recorded time step, read from the
// force-coefficient series and cached.
func (r *Reconstruction) TimeSteps() (int, error) {
	if r.hasTime {
		return r.timeSteps, nil
	}
	t, err := LastTimeStep(r.fs, r.dir)
	if err != nil {
		return 0, err
	}
	r.timeSteps = int(t)
	r.hasTime = true
	return r.timeSteps, nil
}

// Meshes reconstructs the domain and object boundary meshes at the last
// recorded time step. Results are cached after the first call.
func (r *Reconstruction) Meshes() (*DomainMesh, *ObjectMesh, error) {
	if r.domain != nil && r.object != nil {
		return r.domain, r.object, nil
	}
	if err := EnsureMarker(r.fs, r.dir); err != nil {
		return nil, nil, err
	}
	steps, err := r.TimeSteps()
	if err != nil {
		return nil, nil, err
	}
	timeDir := filepath.Join(r.dir, strconv.Itoa(steps))
	if !r.fs.Exists(timeDir) {
		return nil, nil, &OutputParseError{
			Path:   timeDir,
			Reason: "no recorded time step directory",
		}
	}

	pm, err := readPolyMesh(r.fs, r.dir)
	if err != nil {
		return nil, nil, err
	}
	velocity, err := readVectorField(r.fs, filepath.Join(timeDir, "U"))
	if err != nil {
		return nil, nil, err
	}
	pressure, err := readScalarField(r.fs, filepath.Join(timeDir, "p"))
	if err != nil {
		return nil, nil, err
	}

	domain, err := buildDomainMesh(pm, velocity, pressure)
	if err != nil {
		return nil, nil, err
	}
	object, err := buildObjectMesh(pm, pressure)
	if err != nil {
		return nil, nil, err
	}
	r.domain, r.object = domain, object
	return domain, object, nil
}

// faceCenter averages the corner points of one face.
func faceCenter(points []r3.Vec, face []int) r3.Vec {
	var c r3.Vec
	for _, idx := range face {
		c = r3.Add(c, points[idx])
	}
	return r3.Scale(1/float64(len(face)), c)
}

// buildDomainMesh derives cell centers as the mean of adjacent face centers
// and attaches the per-cell velocity and pressure fields.
func buildDomainMesh(pm *polyMesh, vel *vectorField, press *scalarField) (*DomainMesh, error) {
	if pm.numCells == 0 {
		return nil, &OutputParseError{Reason: "mesh has no cells"}
	}
	if !vel.uniform && len(vel.values) != pm.numCells {
		return nil, &OutputParseError{
			Reason: fmt.Sprintf("velocity field has %d entries, mesh has %d cells",
				len(vel.values), pm.numCells),
		}
	}
	if !press.uniform && len(press.values) != pm.numCells {
		return nil, &OutputParseError{
			Reason: fmt.Sprintf("pressure field has %d entries, mesh has %d cells",
				len(press.values), pm.numCells),
		}
	}

	sums := make([]r3.Vec, pm.numCells)
	counts := make([]int, pm.numCells)
	accumulate := func(cell int, fc r3.Vec) {
		sums[cell] = r3.Add(sums[cell], fc)
		counts[cell]++
	}
	for i, face := range pm.faces {
		fc := faceCenter(pm.points, face)
		accumulate(pm.owner[i], fc)
		if i < len(pm.neighbour) {
			accumulate(pm.neighbour[i], fc)
		}
	}

	dm := &DomainMesh{
		CellCenters: make([]r3.Vec, pm.numCells),
		Velocity:    make([]r3.Vec, pm.numCells),
		Pressure:    make([]float64, pm.numCells),
	}
	for i := range sums {
		if counts[i] == 0 {
			return nil, &OutputParseError{Reason: "cell with no faces in mesh"}
		}
		dm.CellCenters[i] = r3.Scale(1/float64(counts[i]), sums[i])
		dm.Velocity[i] = vel.cellValue(i)
		dm.Pressure[i] = press.cellValue(i)
	}

	b, err := geometry.Bounds(&geometry.Mesh{Points: pm.points})
	if err != nil {
		return nil, &OutputParseError{Reason: "mesh has no points"}
	}
	dm.Bounds = b
	return dm, nil
}

// buildObjectMesh extracts the object boundary patch with one pressure value
// per face. The patch's explicit boundary values are preferred; faces
// without one fall back to the owner cell's internal value.
func buildObjectMesh(pm *polyMesh, press *scalarField) (*ObjectMesh, error) {
	pt, ok := pm.findPatch(objectPatch)
	if !ok {
		return nil, &OutputParseError{
			Reason: "boundary has no \"" + objectPatch + "\" patch",
		}
	}
	if pt.startFace+pt.nFaces > len(pm.faces) {
		return nil, &OutputParseError{
			Reason: "object patch face range exceeds face list",
		}
	}

	values := press.patchValues(objectPatch, pt.nFaces)

	om := &ObjectMesh{
		Mesh:        &geometry.Mesh{},
		FaceCenters: make([]r3.Vec, 0, pt.nFaces),
		Pressure:    make([]float64, 0, pt.nFaces),
	}
	remap := make(map[int]int)
	for i := 0; i < pt.nFaces; i++ {
		face := pm.faces[pt.startFace+i]
		mapped := make([]int, len(face))
		for j, idx := range face {
			local, ok := remap[idx]
			if !ok {
				local = len(om.Mesh.Points)
				om.Mesh.Points = append(om.Mesh.Points, pm.points[idx])
				remap[idx] = local
			}
			mapped[j] = local
		}
		om.Mesh.Faces = append(om.Mesh.Faces, mapped)
		om.FaceCenters = append(om.FaceCenters, faceCenter(pm.points, face))
		if values != nil {
			om.Pressure = append(om.Pressure, values[i])
		} else {
			om.Pressure = append(om.Pressure, press.cellValue(pm.owner[pt.startFace+i]))
		}
	}
	return om, nil
}
