package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gsapijaszko/flightplanning/internal/plan"
	"github.com/gsapijaszko/flightplanning/internal/units"
)

// DefaultConfigPath is the path to the canonical planner defaults file.
// This is the single source of truth for default camera and mission values.
const DefaultConfigPath = "config/planner.defaults.json"

// PlannerConfig represents the default camera and mission parameters
// applied when a request omits them. The schema matches the
// /api/defaults endpoint so the same JSON serves both startup
// configuration and API inspection.
type PlannerConfig struct {
	// Camera params
	FocalLength35 *float64 `json:"focal_length_35,omitempty"` // mm, 35mm equivalent
	ImageWidthPx  *int     `json:"image_width_px,omitempty"`
	ImageHeightPx *int     `json:"image_height_px,omitempty"`

	// Mission params
	SideOverlap    *float64 `json:"side_overlap,omitempty"`  // fraction in [0,1)
	FrontOverlap   *float64 `json:"front_overlap,omitempty"` // fraction in [0,1)
	FlightSpeedKmh *float64 `json:"flight_speed_kmh,omitempty"`
	MaxGSD         *float64 `json:"max_gsd,omitempty"` // cm/px, 0 disables the cap

	// Display params
	Units *string `json:"units,omitempty"` // speed units for display, see internal/units
}

// EmptyPlannerConfig returns a PlannerConfig with all fields set to nil.
// Use LoadPlannerConfig to load actual values from the defaults file.
func EmptyPlannerConfig() *PlannerConfig {
	return &PlannerConfig{}
}

// LoadPlannerConfig loads a PlannerConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadPlannerConfig(path string) (*PlannerConfig, error) {
	// Validate the config file path.
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse JSON into empty config. The Get* methods provide fallback
	// defaults for any fields not specified in the JSON.
	cfg := EmptyPlannerConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *PlannerConfig) Validate() error {
	if c.FocalLength35 != nil && *c.FocalLength35 <= 0 {
		return fmt.Errorf("focal_length_35 must be positive, got %f", *c.FocalLength35)
	}
	if c.ImageWidthPx != nil && *c.ImageWidthPx <= 0 {
		return fmt.Errorf("image_width_px must be positive, got %d", *c.ImageWidthPx)
	}
	if c.ImageHeightPx != nil && *c.ImageHeightPx <= 0 {
		return fmt.Errorf("image_height_px must be positive, got %d", *c.ImageHeightPx)
	}
	if c.SideOverlap != nil && (*c.SideOverlap < 0 || *c.SideOverlap >= 1) {
		return fmt.Errorf("side_overlap must be in [0,1), got %f", *c.SideOverlap)
	}
	if c.FrontOverlap != nil && (*c.FrontOverlap < 0 || *c.FrontOverlap >= 1) {
		return fmt.Errorf("front_overlap must be in [0,1), got %f", *c.FrontOverlap)
	}
	if c.FlightSpeedKmh != nil && *c.FlightSpeedKmh <= 0 {
		return fmt.Errorf("flight_speed_kmh must be positive, got %f", *c.FlightSpeedKmh)
	}
	if c.MaxGSD != nil && *c.MaxGSD < 0 {
		return fmt.Errorf("max_gsd must be non-negative, got %f", *c.MaxGSD)
	}
	if c.Units != nil && !units.IsValid(*c.Units) {
		return fmt.Errorf("units must be one of %s, got %q", units.GetValidUnitsString(), *c.Units)
	}
	return nil
}

// Camera returns the configured default camera, falling back to the
// planner's built-in defaults for unset fields.
func (c *PlannerConfig) Camera() plan.Camera {
	cam := plan.DefaultCamera()
	if c.FocalLength35 != nil {
		cam.FocalLength35 = *c.FocalLength35
	}
	if c.ImageWidthPx != nil {
		cam.ImageWidthPx = *c.ImageWidthPx
	}
	if c.ImageHeightPx != nil {
		cam.ImageHeightPx = *c.ImageHeightPx
	}
	return cam
}

// Request returns a mission request seeded with the configured
// defaults. Height/GSD are left unset for the caller.
func (c *PlannerConfig) Request() plan.Request {
	req := plan.DefaultRequest()
	if c.SideOverlap != nil {
		req.SideOverlap = *c.SideOverlap
	}
	if c.FrontOverlap != nil {
		req.FrontOverlap = *c.FrontOverlap
	}
	if c.FlightSpeedKmh != nil {
		req.FlightSpeedKmh = *c.FlightSpeedKmh
	}
	if c.MaxGSD != nil {
		req.MaxGSD = *c.MaxGSD
	}
	return req
}

// GetUnits returns the display units or the default.
func (c *PlannerConfig) GetUnits() string {
	if c.Units == nil || *c.Units == "" {
		return units.KMPH // default
	}
	return *c.Units
}
