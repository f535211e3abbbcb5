package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aerolab-data/windtunnel/internal/foam"
	"github.com/aerolab-data/windtunnel/internal/rundb"
)

func newTestServer(t *testing.T) (*Server, *rundb.DB) {
	t.Helper()
	db, err := rundb.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("opening registry: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewServer(db), db
}

func seedRun(t *testing.T, db *rundb.DB, withHistory bool) *rundb.Run {
	t.Helper()
	run := &rundb.Run{ObjectPath: "models/bike.obj", CaseDir: "cases/case-1", Subdomains: 4}
	if err := db.InsertRun(run); err != nil {
		t.Fatalf("seeding run: %v", err)
	}
	if withHistory {
		history := []foam.Coefficients{
			{TimeStep: 1, Drag: 0.9, Lift: 0.4},
			{TimeStep: 100, Moment: 0.038, Drag: 0.354, Lift: 0.3, FrontLift: 0.188, RearLift: 0.111},
		}
		if err := db.InsertCoefficients(run.ID, history); err != nil {
			t.Fatalf("seeding coefficients: %v", err)
		}
	}
	return run
}

func doRequest(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.ServeMux().ServeHTTP(rec, req)
	return rec
}

func TestListRuns(t *testing.T) {
	s, db := newTestServer(t)
	seedRun(t, db, false)
	seedRun(t, db, false)

	rec := doRequest(t, s, http.MethodGet, "/api/runs")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var runs []runAPI
	if err := json.Unmarshal(rec.Body.Bytes(), &runs); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("got %d runs, want 2", len(runs))
	}
	if runs[0].ObjectPath != "models/bike.obj" {
		t.Errorf("object path = %q", runs[0].ObjectPath)
	}
}

func TestListRunsBadLimit(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/runs?limit=zero")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestShowRun(t *testing.T) {
	s, db := newTestServer(t)
	run := seedRun(t, db, false)

	rec := doRequest(t, s, http.MethodGet, "/api/runs/"+run.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got runAPI
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.ID != run.ID || got.Status != rundb.StatusStaged {
		t.Errorf("got %+v, want id %s status staged", got, run.ID)
	}
}

func TestShowRunMissing(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/runs/does-not-exist")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestShowCoefficients(t *testing.T) {
	s, db := newTestServer(t)
	run := seedRun(t, db, true)

	rec := doRequest(t, s, http.MethodGet, "/api/runs/"+run.ID+"/coefficients")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var history []foam.Coefficients
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(history) != 2 || history[1].Drag != 0.354 {
		t.Errorf("history = %+v, want 2 rows with final drag 0.354", history)
	}
}

func TestShowCoefficientsEmpty(t *testing.T) {
	s, db := newTestServer(t)
	run := seedRun(t, db, false)
	rec := doRequest(t, s, http.MethodGet, "/api/runs/"+run.ID+"/coefficients")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestReport(t *testing.T) {
	s, db := newTestServer(t)
	run := seedRun(t, db, true)

	rec := doRequest(t, s, http.MethodGet, "/report/"+run.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "Force Coefficient Convergence") {
		t.Error("report HTML missing chart title")
	}
}

func TestHome(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
