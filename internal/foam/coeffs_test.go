package foam

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/aerolab-data/windtunnel/internal/fsutil"
)

const coeffsFixture = `# Force coefficients
# dragDir     : (1 0 0)
# liftDir     : (0 0 1)
# Time        Cm          Cd          Cl          Cl(f)       Cl(r)
1             0.125       0.912       0.477       0.363       0.114
50            0.051       0.401       0.322       0.212       0.110
100           0.038       0.354       0.300       0.188       0.111
`

func writeCoeffs(t *testing.T, fs fsutil.FileSystem, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(ForceCoeffsRelPath))
	if err := fs.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
}

func TestParseForceCoefficientsUsesLastRow(t *testing.T) {
	fs := fsutil.NewMemory()
	writeCoeffs(t, fs, "out", coeffsFixture)

	got, err := ParseForceCoefficients(fs, "out")
	if err != nil {
		t.Fatalf("ParseForceCoefficients: %v", err)
	}
	want := Coefficients{TimeStep: 100, Moment: 0.038, Drag: 0.354, Lift: 0.300, FrontLift: 0.188, RearLift: 0.111}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestReadCoefficientHistorySkipsComments(t *testing.T) {
	fs := fsutil.NewMemory()
	writeCoeffs(t, fs, "out", coeffsFixture)

	rows, err := ReadCoefficientHistory(fs, "out")
	if err != nil {
		t.Fatalf("ReadCoefficientHistory: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0].TimeStep != 1 || rows[2].TimeStep != 100 {
		t.Errorf("time steps = %v, %v, want 1, 100", rows[0].TimeStep, rows[2].TimeStep)
	}
}

func TestCoefficientsLabeled(t *testing.T) {
	c := Coefficients{Moment: 1, Drag: 2, Lift: 3, FrontLift: 4, RearLift: 5}
	got := c.Labeled()
	want := map[string]float64{"Moment": 1, "Drag": 2, "Lift": 3, "Front Lift": 4, "Rear Lift": 5}
	if len(got) != len(want) {
		t.Fatalf("got %d labels, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("label %q = %v, want %v", k, got[k], v)
		}
	}
}

func TestReadCoefficientHistoryErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		write   bool
	}{
		{name: "missing file", write: false},
		{name: "empty series", content: "# only comments\n", write: true},
		{name: "short row", content: "100 0.1 0.2\n", write: true},
		{name: "non numeric", content: "100 a b c d e\n", write: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := fsutil.NewMemory()
			if tt.write {
				writeCoeffs(t, fs, "out", tt.content)
			}
			_, err := ReadCoefficientHistory(fs, "out")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !IsOutputParseError(err) {
				t.Errorf("error %v is not an OutputParseError", err)
			}
		})
	}
}

func TestLastTimeStep(t *testing.T) {
	fs := fsutil.NewMemory()
	writeCoeffs(t, fs, "out", coeffsFixture)

	ts, err := LastTimeStep(fs, "out")
	if err != nil {
		t.Fatalf("LastTimeStep: %v", err)
	}
	if math.Abs(ts-100) > 1e-12 {
		t.Errorf("got %v, want 100", ts)
	}
}

func TestEnsureMarkerIdempotent(t *testing.T) {
	fs := fsutil.NewMemory()
	for i := 0; i < 2; i++ {
		if err := EnsureMarker(fs, "out"); err != nil {
			t.Fatalf("EnsureMarker call %d: %v", i+1, err)
		}
	}
	data, err := fs.ReadFile(filepath.Join("out", MarkerFile))
	if err != nil {
		t.Fatalf("reading marker: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("marker file has %d bytes, want 0", len(data))
	}
}
