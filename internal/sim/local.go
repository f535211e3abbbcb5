package sim

import (
	"context"
	"fmt"
	"log"
)

// LocalTask is a Task backed by a directory that already contains solver
// output, used for post-processing previously downloaded results and in
// tests. Wait returns immediately.
type LocalTask struct {
	OutputDir string
}

func (t *LocalTask) Wait(ctx context.Context) error { return ctx.Err() }

func (t *LocalTask) DownloadOutputs(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if t.OutputDir == "" {
		return "", &StageError{Stage: "download", Err: fmt.Errorf("no output directory")}
	}
	return t.OutputDir, nil
}

// LocalRunner "runs" cases against pre-existing output directories keyed by
// case dir. Unknown cases fail at submission.
type LocalRunner struct {
	// Outputs maps a case directory to its solver output directory.
	Outputs map[string]string

	// Verbose logs each submission.
	Verbose bool
}

func (r *LocalRunner) Run(ctx context.Context, caseDir string, commands []Command, subdomains int) (Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, ok := r.Outputs[caseDir]
	if !ok {
		return nil, &StageError{Stage: "submit", Err: fmt.Errorf("no output registered for case %s", caseDir)}
	}
	if r.Verbose {
		log.Printf("sim: local run of %s (%d commands, %d subdomains)", caseDir, len(commands), subdomains)
	}
	return &LocalTask{OutputDir: out}, nil
}
