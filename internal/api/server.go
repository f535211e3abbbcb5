// Package api exposes the run registry over HTTP: run listings and
// coefficient histories as JSON, plus an interactive convergence report.
package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/aerolab-data/windtunnel/internal/rundb"
	"github.com/aerolab-data/windtunnel/internal/scene"
)

// ANSI escape codes for request logging.
const (
	colorCyan      = "\033[36m"
	colorReset     = "\033[0m"
	colorYellow    = "\033[33m"
	colorBoldGreen = "\033[1;32m"
	colorBoldRed   = "\033[1;31m"
)

type Server struct {
	db *rundb.DB
}

func NewServer(db *rundb.DB) *Server {
	return &Server{db: db}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/runs", s.listRuns)
	mux.HandleFunc("GET /api/runs/{id}", s.showRun)
	mux.HandleFunc("GET /api/runs/{id}/coefficients", s.showCoefficients)
	mux.HandleFunc("GET /report/{id}", s.showReport)
	mux.HandleFunc("GET /{$}", s.home)
	return mux
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	default:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	}
}

// LoggingMiddleware logs method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Wind Tunnel Run Registry\n"))
}

// runAPI is the wire shape of a run. Timestamps are RFC 3339.
type runAPI struct {
	ID             string     `json:"id"`
	ObjectPath     string     `json:"object_path"`
	CaseDir        string     `json:"case_dir"`
	RotateZDegrees float64    `json:"rotate_z_degrees"`
	ScalingFactor  float64    `json:"scaling_factor"`
	Displacement   [3]float64 `json:"displacement"`
	FrontalArea    float64    `json:"frontal_area"`
	ObjectLength   float64    `json:"object_length"`
	Subdomains     int        `json:"subdomains"`
	Status         string     `json:"status"`
	CreatedAt      string     `json:"created_at"`
	UpdatedAt      string     `json:"updated_at"`
}

func runToAPI(r rundb.Run) runAPI {
	return runAPI{
		ID:             r.ID,
		ObjectPath:     r.ObjectPath,
		CaseDir:        r.CaseDir,
		RotateZDegrees: r.RotateZDegrees,
		ScalingFactor:  r.ScalingFactor,
		Displacement:   [3]float64{r.Displacement.X, r.Displacement.Y, r.Displacement.Z},
		FrontalArea:    r.FrontalArea,
		ObjectLength:   r.ObjectLength,
		Subdomains:     r.Subdomains,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      r.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			writeJSONError(w, http.StatusBadRequest, "invalid 'limit' parameter")
			return
		}
		limit = parsed
	}

	runs, err := s.db.ListRuns(limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list runs: %v", err))
		return
	}
	out := make([]runAPI, len(runs))
	for i, run := range runs {
		out[i] = runToAPI(run)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) showRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.db.GetRun(r.PathValue("id"))
	if errors.Is(err, rundb.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to get run: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, runToAPI(*run))
}

func (s *Server) showCoefficients(w http.ResponseWriter, r *http.Request) {
	history, err := s.db.CoefficientHistory(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to get coefficients: %v", err))
		return
	}
	if len(history) == 0 {
		writeJSONError(w, http.StatusNotFound, "no coefficients recorded for run")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) showReport(w http.ResponseWriter, r *http.Request) {
	history, err := s.db.CoefficientHistory(r.PathValue("id"))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to get coefficients: %v", err))
		return
	}
	if len(history) == 0 {
		writeJSONError(w, http.StatusNotFound, "no coefficients recorded for run")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := scene.CoefficientHistoryHTML(w, history); err != nil {
		log.Printf("api: render report: %v", err)
	}
}
