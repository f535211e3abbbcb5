package tunnel

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aerolab-data/windtunnel/internal/fsutil"
	"github.com/aerolab-data/windtunnel/internal/geometry"
	"github.com/aerolab-data/windtunnel/internal/geometry/objfile"
)

func TestStageCase(t *testing.T) {
	fs := fsutil.NewMemory()
	mesh := geometry.UnitCube()

	caseDir, err := StageCase(fs, "runs", mesh)
	if err != nil {
		t.Fatalf("StageCase: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(caseDir), "case-") {
		t.Errorf("case dir %q lacks case- prefix", caseDir)
	}

	data, err := fs.ReadFile(filepath.Join(caseDir, filepath.FromSlash(ObjectRelPath)))
	if err != nil {
		t.Fatalf("reading staged object: %v", err)
	}
	got, err := objfile.Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parsing staged object: %v", err)
	}
	if got.NumPoints() != mesh.NumPoints() || got.NumFaces() != mesh.NumFaces() {
		t.Errorf("staged mesh has %d points, %d faces; want %d, %d",
			got.NumPoints(), got.NumFaces(), mesh.NumPoints(), mesh.NumFaces())
	}
}

func TestStageCaseLeavesNoStagingDir(t *testing.T) {
	fs := fsutil.NewMemory()
	if _, err := StageCase(fs, "runs", geometry.UnitCube()); err != nil {
		t.Fatalf("StageCase: %v", err)
	}
	entries, err := fs.ReadDir("runs")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".staging-") {
			t.Errorf("staging dir %q left behind", e.Name())
		}
	}
}

func TestStageCaseDistinctDirs(t *testing.T) {
	fs := fsutil.NewMemory()
	mesh := geometry.UnitCube()
	a, err := StageCase(fs, "runs", mesh)
	if err != nil {
		t.Fatalf("first StageCase: %v", err)
	}
	b, err := StageCase(fs, "runs", mesh)
	if err != nil {
		t.Fatalf("second StageCase: %v", err)
	}
	if a == b {
		t.Errorf("both cases staged to %q", a)
	}
}
