// Package db persists computed flight plans in sqlite and exposes
// admin debugging routes over the store.
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/gsapijaszko/flightplanning/internal/plan"
)

type DB struct {
	*sql.DB
}

// OpenDB opens the sqlite database without touching the schema.
// Use this when migrations will manage the schema.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

// NewDB opens the sqlite database and ensures the base schema exists.
func NewDB(path string) (*DB, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS plans (
			plan_id               TEXT PRIMARY KEY,
			focal_length_35       DOUBLE,
			image_width_px        BIGINT,
			image_height_px       BIGINT,
			side_overlap          DOUBLE,
			front_overlap         DOUBLE,
			requested_speed_kmh   DOUBLE,
			max_gsd               DOUBLE,
			height                DOUBLE,
			gsd                   DOUBLE,
			flight_line_distance  DOUBLE,
			minimum_shutter_speed TEXT,
			photo_interval        DOUBLE,
			ground_height         DOUBLE,
			flight_speed_kmh      DOUBLE,
			timestamp             TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// StoredPlan is one persisted planning run: the camera and mission
// inputs alongside the derived parameters.
type StoredPlan struct {
	ID        string          `json:"id"`
	Camera    plan.Camera     `json:"camera"`
	Request   plan.Request    `json:"request"`
	Result    plan.Parameters `json:"result"`
	Timestamp time.Time       `json:"timestamp"`
}

// RecordPlan stores a computed plan and returns its generated ID.
func (db *DB) RecordPlan(cam plan.Camera, req plan.Request, p *plan.Parameters) (string, error) {
	id := uuid.NewString()

	_, err := db.Exec(`
		INSERT INTO plans (
			plan_id, focal_length_35, image_width_px, image_height_px,
			side_overlap, front_overlap, requested_speed_kmh, max_gsd,
			height, gsd, flight_line_distance, minimum_shutter_speed,
			photo_interval, ground_height, flight_speed_kmh
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, cam.FocalLength35, cam.ImageWidthPx, cam.ImageHeightPx,
		req.SideOverlap, req.FrontOverlap, req.FlightSpeedKmh, req.MaxGSD,
		p.Height, p.GSD, p.FlightLineDistance, p.MinimumShutterSpeed,
		p.PhotoInterval, p.GroundHeight, p.FlightSpeedKmh,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record plan: %w", err)
	}

	return id, nil
}

// Plans returns the most recent stored plans, newest first.
func (db *DB) Plans(limit int) ([]StoredPlan, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT plan_id, focal_length_35, image_width_px, image_height_px,
			side_overlap, front_overlap, requested_speed_kmh, max_gsd,
			height, gsd, flight_line_distance, minimum_shutter_speed,
			photo_interval, ground_height, flight_speed_kmh, timestamp
		FROM plans
		ORDER BY timestamp DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []StoredPlan
	for rows.Next() {
		sp, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, sp)
	}
	return plans, rows.Err()
}

// Plan returns a single stored plan by ID. Returns sql.ErrNoRows if
// the plan does not exist.
func (db *DB) Plan(id string) (*StoredPlan, error) {
	row := db.QueryRow(`
		SELECT plan_id, focal_length_35, image_width_px, image_height_px,
			side_overlap, front_overlap, requested_speed_kmh, max_gsd,
			height, gsd, flight_line_distance, minimum_shutter_speed,
			photo_interval, ground_height, flight_speed_kmh, timestamp
		FROM plans
		WHERE plan_id = ?`, id)

	sp, err := scanPlan(row)
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (StoredPlan, error) {
	var sp StoredPlan
	var ts string
	err := row.Scan(
		&sp.ID,
		&sp.Camera.FocalLength35, &sp.Camera.ImageWidthPx, &sp.Camera.ImageHeightPx,
		&sp.Request.SideOverlap, &sp.Request.FrontOverlap, &sp.Request.FlightSpeedKmh, &sp.Request.MaxGSD,
		&sp.Result.Height, &sp.Result.GSD, &sp.Result.FlightLineDistance, &sp.Result.MinimumShutterSpeed,
		&sp.Result.PhotoInterval, &sp.Result.GroundHeight, &sp.Result.FlightSpeedKmh,
		&ts,
	)
	if err != nil {
		return StoredPlan{}, err
	}
	// sqlite stores CURRENT_TIMESTAMP as UTC text
	if t, err := time.Parse("2006-01-02 15:04:05", ts); err == nil {
		sp.Timestamp = t.UTC()
	}
	sp.Result.FrontOverlap = sp.Request.FrontOverlap
	return sp, nil
}
