// Package objfile reads and writes Wavefront OBJ surface meshes. Only the
// vertex and face records are interpreted; texture coordinates, normals,
// groups, and materials are skipped. This is the interchange format between
// the placement pipeline and the external solver.
package objfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aerolab-data/windtunnel/internal/geometry"
)

// Read parses an OBJ mesh from r. Face indices may be 1-based or negative
// (relative to the end of the vertex list) and may carry /texture/normal
// suffixes, which are ignored. Polygonal faces are kept at their source
// arity.
func Read(r io.Reader) (*geometry.Mesh, error) {
	m := &geometry.Mesh{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, &geometry.GeometryError{
					Op:     "obj read",
					Reason: fmt.Sprintf("line %d: vertex needs 3 coordinates", lineNo),
				}
			}
			var p r3.Vec
			var err error
			if p.X, err = strconv.ParseFloat(fields[1], 64); err == nil {
				if p.Y, err = strconv.ParseFloat(fields[2], 64); err == nil {
					p.Z, err = strconv.ParseFloat(fields[3], 64)
				}
			}
			if err != nil {
				return nil, &geometry.GeometryError{
					Op:     "obj read",
					Reason: fmt.Sprintf("line %d: bad vertex coordinate: %v", lineNo, err),
				}
			}
			m.Points = append(m.Points, p)
		case "f":
			if len(fields) < 4 {
				return nil, &geometry.GeometryError{
					Op:     "obj read",
					Reason: fmt.Sprintf("line %d: face needs at least 3 vertices", lineNo),
				}
			}
			face := make([]int, 0, len(fields)-1)
			for _, f := range fields[1:] {
				idx, err := parseFaceIndex(f, len(m.Points))
				if err != nil {
					return nil, &geometry.GeometryError{
						Op:     "obj read",
						Reason: fmt.Sprintf("line %d: %v", lineNo, err),
					}
				}
				face = append(face, idx)
			}
			m.Faces = append(m.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj read: %w", err)
	}
	if len(m.Points) == 0 {
		return nil, &geometry.GeometryError{Op: "obj read", Reason: "mesh has no points"}
	}
	return m, nil
}

// parseFaceIndex resolves one OBJ face vertex reference ("7", "7/2/3",
// "-1") to a zero-based point index.
func parseFaceIndex(field string, numPoints int) (int, error) {
	if i := strings.IndexByte(field, '/'); i >= 0 {
		field = field[:i]
	}
	idx, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q: %v", field, err)
	}
	switch {
	case idx > 0 && idx <= numPoints:
		return idx - 1, nil
	case idx < 0 && -idx <= numPoints:
		return numPoints + idx, nil
	}
	return 0, fmt.Errorf("face index %d out of range (have %d points)", idx, numPoints)
}

// ReadFile reads an OBJ mesh from the named file.
func ReadFile(path string) (*geometry.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj read: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Write serializes the mesh as OBJ. The face list must be uniformly
// triangles or uniformly quads; a mixed-arity face list is rejected because
// the solver's surface reader expects one flat face layout.
func Write(w io.Writer, m *geometry.Mesh) error {
	if m == nil || len(m.Points) == 0 {
		return &geometry.GeometryError{Op: "obj write", Reason: "mesh has no points"}
	}
	arity := 0
	for i, face := range m.Faces {
		if len(face) != 3 && len(face) != 4 {
			return &geometry.GeometryError{
				Op:     "obj write",
				Reason: fmt.Sprintf("face %d has %d vertices, want 3 or 4", i, len(face)),
			}
		}
		if arity == 0 {
			arity = len(face)
		} else if len(face) != arity {
			return &geometry.GeometryError{
				Op:     "obj write",
				Reason: fmt.Sprintf("mixed face arity: face %d has %d vertices, earlier faces have %d", i, len(face), arity),
			}
		}
	}

	bw := bufio.NewWriter(w)
	for _, p := range m.Points {
		fmt.Fprintf(bw, "v %.9g %.9g %.9g\n", p.X, p.Y, p.Z)
	}
	for _, face := range m.Faces {
		bw.WriteString("f")
		for _, idx := range face {
			fmt.Fprintf(bw, " %d", idx+1)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile writes the mesh to the named file.
func WriteFile(path string, m *geometry.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("obj write: %w", err)
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
