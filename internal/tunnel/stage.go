package tunnel

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/aerolab-data/windtunnel/internal/fsutil"
	"github.com/aerolab-data/windtunnel/internal/geometry"
	"github.com/aerolab-data/windtunnel/internal/geometry/objfile"
)

// ObjectRelPath is where the placed mesh lives inside a solver case
// directory. The external solver reads it from there, and the
// reconstruction pipeline reads it back for field interpolation.
const ObjectRelPath = "constant/triSurface/object.obj"

// StageCase writes the placed mesh into a fresh solver case directory under
// baseDir and returns the case directory path. The case is assembled in a
// temporary directory and only promoted (renamed) to its final
// uuid-suffixed location after every write succeeded, so a failure never
// leaves a partially written case behind.
func StageCase(fs fsutil.FileSystem, baseDir string, placed *geometry.Mesh) (string, error) {
	var buf bytes.Buffer
	if err := objfile.Write(&buf, placed); err != nil {
		return "", fmt.Errorf("stage case: %w", err)
	}

	tmp := filepath.Join(baseDir, ".staging-"+uuid.NewString())
	objDir := filepath.Join(tmp, filepath.Dir(ObjectRelPath))
	if err := fs.MkdirAll(objDir, 0o755); err != nil {
		return "", fmt.Errorf("stage case: %w", err)
	}
	if err := fs.WriteFile(filepath.Join(tmp, ObjectRelPath), buf.Bytes(), 0o644); err != nil {
		fs.RemoveAll(tmp)
		return "", fmt.Errorf("stage case: %w", err)
	}

	caseDir := filepath.Join(baseDir, "case-"+uuid.NewString())
	if err := fs.Rename(tmp, caseDir); err != nil {
		fs.RemoveAll(tmp)
		return "", fmt.Errorf("stage case: promote staging dir: %w", err)
	}
	return caseDir, nil
}
