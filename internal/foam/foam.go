// Package foam reads the output directory of an OpenFOAM steady-state run:
// the force-coefficient time series, the reconstructed domain and object
// boundary meshes at the last recorded time step, and the velocity and
// pressure fields needed for interpolation and streamline tracing.
package foam

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/aerolab-data/windtunnel/internal/fsutil"
)

// Fixed locations inside a solver output directory.
const (
	// MarkerFile must exist (zero bytes) before the case reader is
	// invoked. Historical requirement of OpenFOAM-compatible readers.
	MarkerFile = "foam.foam"

	// ForceCoeffsRelPath is the force-coefficient time series written by
	// the solver's forceCoeffs function object.
	ForceCoeffsRelPath = "postProcessing/forceCoeffs1/0/forceCoeffs.dat"

	// objectPatch is the boundary region of the inserted object.
	objectPatch = "object"
)

// OutputParseError reports missing or malformed solver output: an absent
// time series, an absent boundary region, or an unparseable field.
type OutputParseError struct {
	Path   string
	Reason string
}

func (e *OutputParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("solver output: %s", e.Reason)
	}
	return fmt.Sprintf("solver output %s: %s", e.Path, e.Reason)
}

// IsOutputParseError reports whether err is, or wraps, an OutputParseError.
func IsOutputParseError(err error) bool {
	var pe *OutputParseError
	return errors.As(err, &pe)
}

// EnsureMarker creates the zero-byte marker file in the output directory if
// it does not already exist. It is idempotent and has no side effect beyond
// creating the file.
func EnsureMarker(fs fsutil.FileSystem, outputDir string) error {
	path := filepath.Join(outputDir, MarkerFile)
	if fs.Exists(path) {
		return nil
	}
	if err := fs.WriteFile(path, nil, 0o644); err != nil {
		return fmt.Errorf("create marker file: %w", err)
	}
	return nil
}
