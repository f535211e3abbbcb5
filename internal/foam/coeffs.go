package foam

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aerolab-data/windtunnel/internal/fsutil"
)

// Coefficients are the integrated force and moment coefficients reported by
// the solver at one time step.
type Coefficients struct {
	TimeStep  float64
	Moment    float64
	Drag      float64
	Lift      float64
	FrontLift float64
	RearLift  float64
}

// Labeled returns the coefficients as a labeled record, in the solver's
// reporting order.
func (c Coefficients) Labeled() map[string]float64 {
	return map[string]float64{
		"Moment":     c.Moment,
		"Drag":       c.Drag,
		"Lift":       c.Lift,
		"Front Lift": c.FrontLift,
		"Rear Lift":  c.RearLift,
	}
}

// ReadCoefficientHistory parses the full force-coefficient time series from
// the output directory. Each row is whitespace-delimited with a leading
// time-step column followed by moment, drag, lift, front lift, and rear
// lift. Comment lines starting with '#' are skipped.
func ReadCoefficientHistory(fs fsutil.FileSystem, outputDir string) ([]Coefficients, error) {
	path := filepath.Join(outputDir, filepath.FromSlash(ForceCoeffsRelPath))
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, &OutputParseError{Path: path, Reason: fmt.Sprintf("read time series: %v", err)}
	}

	var rows []Coefficients
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 6 {
			return nil, &OutputParseError{
				Path:   path,
				Reason: fmt.Sprintf("line %d has %d columns, want at least 6", i+1, len(fields)),
			}
		}
		var vals [6]float64
		for j := 0; j < 6; j++ {
			vals[j], err = strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, &OutputParseError{
					Path:   path,
					Reason: fmt.Sprintf("line %d column %d: %v", i+1, j+1, err),
				}
			}
		}
		rows = append(rows, Coefficients{
			TimeStep:  vals[0],
			Moment:    vals[1],
			Drag:      vals[2],
			Lift:      vals[3],
			FrontLift: vals[4],
			RearLift:  vals[5],
		})
	}
	if len(rows) == 0 {
		return nil, &OutputParseError{Path: path, Reason: "time series is empty"}
	}
	return rows, nil
}

// ParseForceCoefficients returns the converged (last-row) force coefficients
// of the run. Earlier rows are diagnostic only.
func ParseForceCoefficients(fs fsutil.FileSystem, outputDir string) (Coefficients, error) {
	rows, err := ReadCoefficientHistory(fs, outputDir)
	if err != nil {
		return Coefficients{}, err
	}
	return rows[len(rows)-1], nil
}

// LastTimeStep returns the time value of the last recorded row, the solver's
// converged steady state. All mesh and field reconstruction happens at this
// single time index.
func LastTimeStep(fs fsutil.FileSystem, outputDir string) (float64, error) {
	last, err := ParseForceCoefficients(fs, outputDir)
	if err != nil {
		return 0, err
	}
	return last.TimeStep, nil
}
