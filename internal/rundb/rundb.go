// Package rundb persists the simulation run registry: one row per staged
// case plus the force-coefficient history captured after post-processing.
package rundb

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	_ "modernc.org/sqlite"

	"github.com/aerolab-data/windtunnel/internal/foam"
)

// Run statuses, in lifecycle order.
const (
	StatusStaged    = "staged"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ErrNotFound is returned when a run id has no row.
var ErrNotFound = errors.New("rundb: run not found")

type DB struct {
	*sql.DB
}

// Open opens (or creates) the registry database at path and applies pending
// migrations.
func Open(path string) (*DB, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run registry: %w", err)
	}
	db := &DB{sqldb}
	if err := db.MigrateUp(); err != nil {
		sqldb.Close()
		return nil, err
	}
	return db, nil
}

// Run is one registry row. ID is a uuid assigned at insert.
type Run struct {
	ID             string
	ObjectPath     string
	CaseDir        string
	RotateZDegrees float64
	ScalingFactor  float64
	Displacement   r3.Vec
	FrontalArea    float64
	ObjectLength   float64
	Subdomains     int
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InsertRun stores a new run. A missing ID gets a fresh uuid and a missing
// status defaults to staged; both are written back to r.
func (db *DB) InsertRun(r *Run) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = StatusStaged
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	_, err := db.Exec(
		`INSERT INTO runs (
			run_id, object_path, case_dir, rotate_z_degrees, scaling_factor,
			displacement_x, displacement_y, displacement_z,
			frontal_area, object_length, subdomains, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ObjectPath, r.CaseDir, r.RotateZDegrees, r.ScalingFactor,
		r.Displacement.X, r.Displacement.Y, r.Displacement.Z,
		r.FrontalArea, r.ObjectLength, r.Subdomains, r.Status, r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// UpdateRunStatus advances a run's lifecycle status.
func (db *DB) UpdateRunStatus(id, status string) error {
	res, err := db.Exec(
		`UPDATE runs SET status = ?, updated_at = ? WHERE run_id = ?`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update run status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update run status: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetRun fetches one run by id.
func (db *DB) GetRun(id string) (*Run, error) {
	row := db.QueryRow(
		`SELECT run_id, object_path, case_dir, rotate_z_degrees, scaling_factor,
			displacement_x, displacement_y, displacement_z,
			frontal_area, object_length, subdomains, status, created_at, updated_at
		FROM runs WHERE run_id = ?`, id)
	r := &Run{}
	err := row.Scan(&r.ID, &r.ObjectPath, &r.CaseDir, &r.RotateZDegrees, &r.ScalingFactor,
		&r.Displacement.X, &r.Displacement.Y, &r.Displacement.Z,
		&r.FrontalArea, &r.ObjectLength, &r.Subdomains, &r.Status, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// ListRuns returns the most recent runs, newest first. A non-positive limit
// returns everything.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `SELECT run_id, object_path, case_dir, rotate_z_degrees, scaling_factor,
			displacement_x, displacement_y, displacement_z,
			frontal_area, object_length, subdomains, status, created_at, updated_at
		FROM runs ORDER BY created_at DESC, run_id`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.ObjectPath, &r.CaseDir, &r.RotateZDegrees, &r.ScalingFactor,
			&r.Displacement.X, &r.Displacement.Y, &r.Displacement.Z,
			&r.FrontalArea, &r.ObjectLength, &r.Subdomains, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// InsertCoefficients stores a run's full coefficient history in one
// transaction, replacing any rows already recorded for the run.
func (db *DB) InsertCoefficients(runID string, history []foam.Coefficients) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("insert coefficients: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM coefficients WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("insert coefficients: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO coefficients (run_id, time_step, moment, drag, lift, front_lift, rear_lift)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("insert coefficients: %w", err)
	}
	defer stmt.Close()
	for _, c := range history {
		if _, err := stmt.Exec(runID, c.TimeStep, c.Moment, c.Drag, c.Lift, c.FrontLift, c.RearLift); err != nil {
			return fmt.Errorf("insert coefficients: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert coefficients: %w", err)
	}
	return nil
}

// CoefficientHistory returns a run's stored time series in time-step order.
func (db *DB) CoefficientHistory(runID string) ([]foam.Coefficients, error) {
	rows, err := db.Query(
		`SELECT time_step, moment, drag, lift, front_lift, rear_lift
		FROM coefficients WHERE run_id = ? ORDER BY time_step`, runID)
	if err != nil {
		return nil, fmt.Errorf("coefficient history: %w", err)
	}
	defer rows.Close()

	var history []foam.Coefficients
	for rows.Next() {
		var c foam.Coefficients
		if err := rows.Scan(&c.TimeStep, &c.Moment, &c.Drag, &c.Lift, &c.FrontLift, &c.RearLift); err != nil {
			return nil, fmt.Errorf("coefficient history: %w", err)
		}
		history = append(history, c)
	}
	return history, rows.Err()
}

// LatestCoefficients returns the converged (last time step) coefficients of
// a run.
func (db *DB) LatestCoefficients(runID string) (foam.Coefficients, error) {
	row := db.QueryRow(
		`SELECT time_step, moment, drag, lift, front_lift, rear_lift
		FROM coefficients WHERE run_id = ? ORDER BY time_step DESC LIMIT 1`, runID)
	var c foam.Coefficients
	err := row.Scan(&c.TimeStep, &c.Moment, &c.Drag, &c.Lift, &c.FrontLift, &c.RearLift)
	if errors.Is(err, sql.ErrNoRows) {
		return foam.Coefficients{}, ErrNotFound
	}
	if err != nil {
		return foam.Coefficients{}, fmt.Errorf("latest coefficients: %w", err)
	}
	return c, nil
}
