package foam

import (
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aerolab-data/windtunnel/internal/fsutil"
)

// polyMesh is the solver's volumetric mesh as stored under
// constant/polyMesh: a shared point list, the face list, and the owner and
// neighbour cell of every face. Boundary patches are contiguous face ranges
// named in the boundary file.
type polyMesh struct {
	points    []r3.Vec
	faces     [][]int
	owner     []int
	neighbour []int
	patches   []patch
	numCells  int
}

type patch struct {
	name      string
	startFace int
	nFaces    int
}

func (pm *polyMesh) findPatch(name string) (patch, bool) {
	for _, p := range pm.patches {
		if p.name == name {
			return p, true
		}
	}
	return patch{}, false
}

func readPolyMesh(fs fsutil.FileSystem, caseDir string) (*polyMesh, error) {
	dir := filepath.Join(caseDir, "constant", "polyMesh")
	pm := &polyMesh{}
	var err error

	if pm.points, err = readPointsFile(fs, filepath.Join(dir, "points")); err != nil {
		return nil, err
	}
	if pm.faces, err = readFacesFile(fs, filepath.Join(dir, "faces")); err != nil {
		return nil, err
	}
	if pm.owner, err = readLabelFile(fs, filepath.Join(dir, "owner")); err != nil {
		return nil, err
	}
	if pm.neighbour, err = readLabelFile(fs, filepath.Join(dir, "neighbour")); err != nil {
		return nil, err
	}
	if pm.patches, err = readBoundaryFile(fs, filepath.Join(dir, "boundary")); err != nil {
		return nil, err
	}
	if len(pm.owner) != len(pm.faces) {
		return nil, &OutputParseError{
			Path:   dir,
			Reason: "owner list length does not match face count",
		}
	}
	for _, c := range pm.owner {
		if c+1 > pm.numCells {
			pm.numCells = c + 1
		}
	}
	for _, c := range pm.neighbour {
		if c+1 > pm.numCells {
			pm.numCells = c + 1
		}
	}
	return pm, nil
}

func readPointsFile(fs fsutil.FileSystem, path string) ([]r3.Vec, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, &OutputParseError{Path: path, Reason: err.Error()}
	}
	p := newParser(path, data)
	n, err := p.int()
	if err != nil {
		return nil, err
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	pts := make([]r3.Vec, 0, n)
	for p.peek() == "(" {
		v, err := p.vec()
		if err != nil {
			return nil, err
		}
		pts = append(pts, v)
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if len(pts) != n {
		return nil, p.errf("points: declared %d entries, found %d", n, len(pts))
	}
	return pts, nil
}

func readFacesFile(fs fsutil.FileSystem, path string) ([][]int, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, &OutputParseError{Path: path, Reason: err.Error()}
	}
	p := newParser(path, data)
	n, err := p.int()
	if err != nil {
		return nil, err
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	faces := make([][]int, 0, n)
	for p.peek() != ")" && !p.done() {
		arity, err := p.int()
		if err != nil {
			return nil, err
		}
		if err := p.expect("("); err != nil {
			return nil, err
		}
		face := make([]int, arity)
		for i := range face {
			if face[i], err = p.int(); err != nil {
				return nil, err
			}
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		faces = append(faces, face)
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if len(faces) != n {
		return nil, p.errf("faces: declared %d entries, found %d", n, len(faces))
	}
	return faces, nil
}

func readLabelFile(fs fsutil.FileSystem, path string) ([]int, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, &OutputParseError{Path: path, Reason: err.Error()}
	}
	p := newParser(path, data)
	n, err := p.int()
	if err != nil {
		return nil, err
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	labels := make([]int, 0, n)
	for p.peek() != ")" && !p.done() {
		v, err := p.int()
		if err != nil {
			return nil, err
		}
		labels = append(labels, v)
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if len(labels) != n {
		return nil, p.errf("labels: declared %d entries, found %d", n, len(labels))
	}
	return labels, nil
}

func readBoundaryFile(fs fsutil.FileSystem, path string) ([]patch, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, &OutputParseError{Path: path, Reason: err.Error()}
	}
	p := newParser(path, data)
	n, err := p.int()
	if err != nil {
		return nil, err
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	patches := make([]patch, 0, n)
	for p.peek() != ")" && !p.done() {
		var pt patch
		pt.name = p.next()
		if err := p.expect("{"); err != nil {
			return nil, err
		}
		for p.peek() != "}" && !p.done() {
			key := p.next()
			switch key {
			case "nFaces":
				if pt.nFaces, err = p.int(); err != nil {
					return nil, err
				}
			case "startFace":
				if pt.startFace, err = p.int(); err != nil {
					return nil, err
				}
			}
			// Skip to the end of this entry.
			for !p.done() && p.peek() != ";" && p.peek() != "}" {
				p.next()
			}
			if p.peek() == ";" {
				p.next()
			}
		}
		if err := p.expect("}"); err != nil {
			return nil, err
		}
		patches = append(patches, pt)
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if len(patches) != n {
		return nil, p.errf("boundary: declared %d patches, found %d", n, len(patches))
	}
	return patches, nil
}

// vec parses a "(x y z)" vector token group.
func (p *parser) vec() (r3.Vec, error) {
	if err := p.expect("("); err != nil {
		return r3.Vec{}, err
	}
	var v r3.Vec
	var err error
	if v.X, err = p.float(); err != nil {
		return r3.Vec{}, err
	}
	if v.Y, err = p.float(); err != nil {
		return r3.Vec{}, err
	}
	if v.Z, err = p.float(); err != nil {
		return r3.Vec{}, err
	}
	if err := p.expect(")"); err != nil {
		return r3.Vec{}, err
	}
	return v, nil
}
