package report

import (
	"bytes"
	"math"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gsapijaszko/flightplanning/internal/config"
	"github.com/gsapijaszko/flightplanning/internal/plan"
)

func TestSweep(t *testing.T) {
	samples, err := Sweep(plan.DefaultCamera(), plan.DefaultRequest(), 1, 10, 10)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if len(samples) != 10 {
		t.Fatalf("len(samples) = %d, want 10", len(samples))
	}

	if math.Abs(samples[0].GSD-1) > 1e-9 || math.Abs(samples[9].GSD-10) > 1e-9 {
		t.Errorf("sweep endpoints = %v, %v; want 1, 10", samples[0].GSD, samples[9].GSD)
	}

	// Height and spacing grow monotonically with GSD for a fixed camera.
	for i := 1; i < len(samples); i++ {
		if samples[i].Height <= samples[i-1].Height {
			t.Errorf("height not monotonic at sample %d: %v <= %v", i, samples[i].Height, samples[i-1].Height)
		}
		if samples[i].FlightLineDistance <= samples[i-1].FlightLineDistance {
			t.Errorf("spacing not monotonic at sample %d", i)
		}
	}

	// Every sample went through interval repair.
	for i, s := range samples {
		if s.PhotoInterval < plan.MinPhotoInterval-1e-12 {
			t.Errorf("sample %d: interval %v below minimum", i, s.PhotoInterval)
		}
	}
}

func TestSweepRejectsBadRange(t *testing.T) {
	tests := []struct {
		name           string
		gsdMin, gsdMax float64
		n              int
	}{
		{"one point", 1, 10, 1},
		{"inverted range", 10, 1, 5},
		{"zero min", 0, 10, 5},
		{"empty range", 4, 4, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Sweep(plan.DefaultCamera(), plan.DefaultRequest(), tt.gsdMin, tt.gsdMax, tt.n); err == nil {
				t.Error("Sweep() succeeded, want error")
			}
		})
	}
}

func TestRenderSweepChart(t *testing.T) {
	samples, err := Sweep(plan.DefaultCamera(), plan.DefaultRequest(), 2, 6, 5)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}

	var buf bytes.Buffer
	if err := RenderSweepChart(&buf, samples); err != nil {
		t.Fatalf("RenderSweepChart() error = %v", err)
	}

	html := buf.String()
	if !strings.Contains(html, "Flight parameters vs GSD") {
		t.Error("rendered chart missing title")
	}
	if !strings.Contains(html, "cruise speed") {
		t.Error("rendered chart missing speed series")
	}
}

func TestSweepChartHandler(t *testing.T) {
	h := SweepChartHandler(config.EmptyPlannerConfig())

	req := httptest.NewRequest("GET", "/sweep/chart?gsd_min=2&gsd_max=8&points=10", nil)
	w := httptest.NewRecorder()
	h(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}

func TestCoveragePlot(t *testing.T) {
	cam := plan.DefaultCamera()
	req := plan.DefaultRequest()
	req.GSD = 4

	p, err := plan.Compute(cam, req, &plan.Recorder{})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "coverage.png")
	if err := CoveragePlot(path, cam, p); err != nil {
		t.Fatalf("CoveragePlot() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat plot: %v", err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}
