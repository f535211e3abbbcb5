package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aerolab-data/windtunnel/internal/api"
	"github.com/aerolab-data/windtunnel/internal/foam"
	"github.com/aerolab-data/windtunnel/internal/fsutil"
	"github.com/aerolab-data/windtunnel/internal/geometry/objfile"
	"github.com/aerolab-data/windtunnel/internal/rundb"
	"github.com/aerolab-data/windtunnel/internal/scene"
	"github.com/aerolab-data/windtunnel/internal/sim"
	"github.com/aerolab-data/windtunnel/internal/tunnel"
)

// runPlace reads the input mesh, runs the placement pipeline, stages a
// solver case, and records the run in the registry.
func runPlace(tun *tunnel.Tunnel) error {
	if *objectPath == "" {
		return fmt.Errorf("-object is required")
	}
	mesh, err := objfile.ReadFile(*objectPath)
	if err != nil {
		return err
	}

	placed, props, err := tun.PlaceObject(mesh, tunnel.PlacementOptions{
		AxisCorrect:    *axisUp,
		RotateZDegrees: *rotateZ,
		Center:         *center,
		Normalize:      *normalize,
		Verbose:        *verbose,
	})
	if err != nil {
		return err
	}

	fs := fsutil.OS{}
	caseDir, err := tunnel.StageCase(fs, *casesDir, placed)
	if err != nil {
		return err
	}

	var mg *tunnel.MachineGroup
	if *vcpus > 0 {
		mg = &tunnel.MachineGroup{Name: fmt.Sprintf("%d-vcpu", *vcpus), VCPUs: *vcpus}
	}
	subdomains, err := tunnel.Subdomains(mg)
	if err != nil {
		return err
	}
	if n := tuning.GetSubdomains(); n > 0 {
		subdomains = n
	}

	db, err := rundb.Open(*dbFile)
	if err != nil {
		return err
	}
	defer db.Close()

	run := &rundb.Run{
		ObjectPath:     *objectPath,
		CaseDir:        caseDir,
		RotateZDegrees: props.RotateZDegrees,
		ScalingFactor:  props.ScalingFactor,
		Displacement:   props.Displacement,
		FrontalArea:    props.Area,
		ObjectLength:   props.Length,
		Subdomains:     subdomains,
	}
	if err := db.InsertRun(run); err != nil {
		return err
	}

	log.Printf("staged case %s (run %s)", caseDir, run.ID)
	log.Printf("frontal area %.4f m2, length %.4f m, scaling factor %.6f, %d subdomains",
		props.Area, props.Length, props.ScalingFactor, subdomains)
	for _, c := range sim.Commands() {
		log.Printf("solver command: %s", c)
	}
	return nil
}

// runPostprocess reconstructs a downloaded solver output directory into
// renders, a convergence report, and registry rows.
func runPostprocess(tun *tunnel.Tunnel) error {
	if *outputsDir == "" {
		return fmt.Errorf("-outputs is required")
	}
	fs := fsutil.OS{}

	history, err := foam.ReadCoefficientHistory(fs, *outputsDir)
	if err != nil {
		return err
	}
	converged := history[len(history)-1]
	log.Printf("converged at time step %g", converged.TimeStep)
	for name, v := range converged.Labeled() {
		log.Printf("  %s: %.4f", name, v)
	}

	rec := foam.NewReconstruction(fs, *outputsDir)
	_, _, err = rec.Meshes()
	if err != nil {
		return err
	}
	pressure, err := rec.InterpolateOntoInput()
	if err != nil {
		return err
	}
	flowSlice, err := rec.FlowSlice(foam.PlaneXZ)
	if err != nil {
		return err
	}

	seed := foam.DefaultSeedSphere()
	seed.Radius = tuning.GetSeedRadius()
	seed.Points = tuning.GetSeedPoints()
	lines, err := rec.Streamlines(foam.StreamlineOptions{
		Seed:       seed,
		MaxTime:    tuning.GetMaxTraceTime(),
		StepLength: tuning.GetStepLength(),
	})
	if err != nil {
		return err
	}
	if *verbose {
		log.Printf("traced %d streamlines", len(lines))
	}

	if err := os.MkdirAll(*plotsDir, 0o755); err != nil {
		return err
	}
	b := scene.NewBuilder().
		AddWalls(tun.Walls).
		AddFieldMesh(pressure).
		AddFlowSlice(flowSlice).
		AddStreamlines(lines).
		AddOriginMarker().
		AddCoefficients(converged)
	stem := "scene"
	if *runID != "" {
		stem = "scene-" + fsutil.SafeName(*runID)
	}
	paths, err := b.RenderViews(*plotsDir, stem)
	if err != nil {
		return err
	}
	for _, p := range paths {
		log.Printf("wrote %s", p)
	}

	reportPath := filepath.Join(*plotsDir, "coefficients.html")
	f, err := os.Create(reportPath)
	if err != nil {
		return err
	}
	if err := scene.CoefficientHistoryHTML(f, history); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s", reportPath)

	if *runID == "" {
		return nil
	}
	db, err := rundb.Open(*dbFile)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.InsertCoefficients(*runID, history); err != nil {
		return err
	}
	if err := db.UpdateRunStatus(*runID, rundb.StatusCompleted); err != nil {
		return err
	}
	log.Printf("recorded %d coefficient rows for run %s", len(history), *runID)
	return nil
}

// runServe exposes the run registry over HTTP until interrupted.
func runServe() error {
	db, err := rundb.Open(*dbFile)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:    *listen,
		Handler: api.LoggingMiddleware(api.NewServer(db).ServeMux()),
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", *listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Println("graceful shutdown complete")
	return nil
}
