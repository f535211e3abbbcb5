// Package sim is the boundary to the external OpenFOAM execution backend.
// It defines the fixed solver command sequence for a staged case and the
// interfaces the rest of the pipeline uses to wait for and collect solver
// output. Actual execution happens on remote machine groups; this package
// never launches the solver itself.
package sim

import (
	"context"
	"fmt"
	"strings"
)

// Command is one step of the solver sequence. Parallel commands run under
// MPI across the case's decomposed subdomains.
type Command struct {
	Name     string
	Args     []string
	Parallel bool
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Commands returns the solver sequence for a staged case: geometry feature
// extraction, background meshing, decomposition, object meshing, flow
// initialization, the steady-state solve, and reconstruction of the
// decomposed result.
func Commands() []Command {
	return []Command{
		{Name: "surfaceFeatures"},
		{Name: "blockMesh"},
		{Name: "decomposePar", Args: []string{"-copyZero"}},
		{Name: "snappyHexMesh", Args: []string{"-overwrite"}, Parallel: true},
		{Name: "potentialFoam", Parallel: true},
		{Name: "simpleFoam", Parallel: true},
		{Name: "reconstructParMesh", Args: []string{"-constant"}},
		{Name: "reconstructPar", Args: []string{"-latestTime"}},
	}
}

// Task is a submitted solver run.
type Task interface {
	// Wait blocks until the run finishes or ctx is canceled.
	Wait(ctx context.Context) error

	// DownloadOutputs fetches the solver output directory and returns its
	// local path.
	DownloadOutputs(ctx context.Context) (string, error)
}

// Runner submits a staged case to an execution backend.
type Runner interface {
	Run(ctx context.Context, caseDir string, commands []Command, subdomains int) (Task, error)
}

// StageError wraps a failure with the solver stage it happened in. Stages
// are not retried; the case directory is left in place for inspection.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("solver stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
