package foam

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/aerolab-data/windtunnel/internal/fsutil"
)

// scalarField is a parsed volScalarField: one value per cell internally,
// plus per-patch boundary values.
type scalarField struct {
	uniform  bool
	constant float64
	values   []float64
	boundary map[string]*scalarPatchField
}

type scalarPatchField struct {
	uniform  bool
	constant float64
	values   []float64
}

// vectorField is a parsed volVectorField.
type vectorField struct {
	uniform  bool
	constant r3.Vec
	values   []r3.Vec
}

// cellValue returns the internal field value for cell i.
func (f *scalarField) cellValue(i int) float64 {
	if f.uniform {
		return f.constant
	}
	return f.values[i]
}

func (f *vectorField) cellValue(i int) r3.Vec {
	if f.uniform {
		return f.constant
	}
	return f.values[i]
}

// patchValues expands the boundary values of a patch to one value per patch
// face. Returns nil if the field has no explicit values for the patch.
func (f *scalarField) patchValues(name string, nFaces int) []float64 {
	pf, ok := f.boundary[name]
	if !ok {
		return nil
	}
	if pf.uniform {
		out := make([]float64, nFaces)
		for i := range out {
			out[i] = pf.constant
		}
		return out
	}
	if len(pf.values) != nFaces {
		return nil
	}
	return pf.values
}

func readScalarField(fs fsutil.FileSystem, path string) (*scalarField, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, &OutputParseError{Path: path, Reason: err.Error()}
	}
	p := newParser(path, data)
	f := &scalarField{boundary: make(map[string]*scalarPatchField)}

	if !p.seek("internalField") {
		return nil, p.errf("no internalField entry")
	}
	f.uniform, f.constant, f.values, err = p.scalarValue()
	if err != nil {
		return nil, err
	}

	if !p.seek("boundaryField") {
		return f, nil
	}
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	for p.peek() != "}" && !p.done() {
		name := p.next()
		pf, err := p.scalarPatch()
		if err != nil {
			return nil, err
		}
		if pf != nil {
			f.boundary[name] = pf
		}
	}
	return f, nil
}

// scalarPatch parses one boundaryField patch block, returning its value
// entry if it has one.
func (p *parser) scalarPatch() (*scalarPatchField, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	var pf *scalarPatchField
	for p.peek() != "}" && !p.done() {
		key := p.next()
		if key == "value" {
			uniform, constant, values, err := p.scalarValue()
			if err != nil {
				return nil, err
			}
			pf = &scalarPatchField{uniform: uniform, constant: constant, values: values}
			continue
		}
		for !p.done() && p.peek() != ";" && p.peek() != "}" {
			if p.peek() == "{" {
				p.skipBlock()
				continue
			}
			p.next()
		}
		if p.peek() == ";" {
			p.next()
		}
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return pf, nil
}

// scalarValue parses "uniform <v>" or "nonuniform List<scalar> N ( ... )".
func (p *parser) scalarValue() (uniform bool, constant float64, values []float64, err error) {
	switch kind := p.next(); kind {
	case "uniform":
		constant, err = p.float()
		if err != nil {
			return false, 0, nil, err
		}
		return true, constant, nil, nil
	case "nonuniform":
		if !strings.HasPrefix(p.peek(), "List<") {
			return false, 0, nil, p.errf("expected List<...>, got %q", p.peek())
		}
		p.next()
		// Optional declared size.
		if p.peek() != "(" {
			if _, err := p.int(); err != nil {
				return false, 0, nil, err
			}
		}
		if err := p.expect("("); err != nil {
			return false, 0, nil, err
		}
		for p.peek() != ")" && !p.done() {
			v, err := p.float()
			if err != nil {
				return false, 0, nil, err
			}
			values = append(values, v)
		}
		if err := p.expect(")"); err != nil {
			return false, 0, nil, err
		}
		return false, 0, values, nil
	default:
		return false, 0, nil, p.errf("expected uniform or nonuniform, got %q", kind)
	}
}

func readVectorField(fs fsutil.FileSystem, path string) (*vectorField, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, &OutputParseError{Path: path, Reason: err.Error()}
	}
	p := newParser(path, data)
	f := &vectorField{}

	if !p.seek("internalField") {
		return nil, p.errf("no internalField entry")
	}
	switch kind := p.next(); kind {
	case "uniform":
		f.uniform = true
		if f.constant, err = p.vec(); err != nil {
			return nil, err
		}
	case "nonuniform":
		if !strings.HasPrefix(p.peek(), "List<") {
			return nil, p.errf("expected List<...>, got %q", p.peek())
		}
		p.next()
		if p.peek() != "(" {
			if _, err := p.int(); err != nil {
				return nil, err
			}
		}
		if err := p.expect("("); err != nil {
			return nil, err
		}
		for p.peek() == "(" {
			v, err := p.vec()
			if err != nil {
				return nil, err
			}
			f.values = append(f.values, v)
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
	default:
		return nil, p.errf("expected uniform or nonuniform, got %q", kind)
	}
	return f, nil
}
