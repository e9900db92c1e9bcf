package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planner.json")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadPlannerConfig(t *testing.T) {
	path := writeConfig(t, `{
		"focal_length_35": 24,
		"image_width_px": 5472,
		"image_height_px": 3648,
		"side_overlap": 0.7,
		"flight_speed_kmh": 36,
		"units": "mps"
	}`)

	cfg, err := LoadPlannerConfig(path)
	if err != nil {
		t.Fatalf("LoadPlannerConfig() error = %v", err)
	}

	cam := cfg.Camera()
	if cam.FocalLength35 != 24 || cam.ImageWidthPx != 5472 || cam.ImageHeightPx != 3648 {
		t.Errorf("Camera() = %+v, want configured values", cam)
	}

	req := cfg.Request()
	if req.SideOverlap != 0.7 {
		t.Errorf("Request().SideOverlap = %v, want 0.7", req.SideOverlap)
	}
	// front_overlap omitted, should fall back to the built-in default
	if req.FrontOverlap != 0.8 {
		t.Errorf("Request().FrontOverlap = %v, want default 0.8", req.FrontOverlap)
	}
	if req.FlightSpeedKmh != 36 {
		t.Errorf("Request().FlightSpeedKmh = %v, want 36", req.FlightSpeedKmh)
	}
	if req.MaxGSD != 0 {
		t.Errorf("Request().MaxGSD = %v, want 0 (cap disabled)", req.MaxGSD)
	}

	if cfg.GetUnits() != "mps" {
		t.Errorf("GetUnits() = %q, want mps", cfg.GetUnits())
	}
}

func TestEmptyConfigFallsBackToDefaults(t *testing.T) {
	cfg := EmptyPlannerConfig()

	cam := cfg.Camera()
	if cam.FocalLength35 != 20 || cam.ImageWidthPx != 4000 || cam.ImageHeightPx != 3000 {
		t.Errorf("Camera() = %+v, want built-in defaults", cam)
	}

	req := cfg.Request()
	if req.SideOverlap != 0.8 || req.FrontOverlap != 0.8 || req.FlightSpeedKmh != 54 {
		t.Errorf("Request() = %+v, want built-in defaults", req)
	}

	if cfg.GetUnits() != "kmph" {
		t.Errorf("GetUnits() = %q, want kmph", cfg.GetUnits())
	}
}

func TestLoadPlannerConfigValidation(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantErr  string
	}{
		{"negative focal length", `{"focal_length_35": -1}`, "focal_length_35"},
		{"overlap at one", `{"side_overlap": 1.0}`, "side_overlap"},
		{"negative front overlap", `{"front_overlap": -0.1}`, "front_overlap"},
		{"zero speed", `{"flight_speed_kmh": 0}`, "flight_speed_kmh"},
		{"negative max gsd", `{"max_gsd": -2}`, "max_gsd"},
		{"bad units", `{"units": "knots"}`, "units"},
		{"zero image width", `{"image_width_px": 0}`, "image_width_px"},
		{"malformed json", `{"units": `, "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.contents)
			_, err := LoadPlannerConfig(path)
			if err == nil {
				t.Fatal("LoadPlannerConfig() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadPlannerConfigRejectsNonJSONExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadPlannerConfig(path); err == nil {
		t.Fatal("LoadPlannerConfig() accepted non-json extension")
	}
}
