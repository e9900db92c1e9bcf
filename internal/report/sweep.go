// Package report produces operator-facing views of the planner output:
// GSD sweeps, debug charts, and coverage diagrams.
package report

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/gsapijaszko/flightplanning/internal/plan"
)

// Sample is one evaluated point of a GSD sweep.
type Sample struct {
	GSD                float64 `json:"gsd"`
	Height             float64 `json:"height"`
	FlightLineDistance float64 `json:"flight_line_distance"`
	PhotoInterval      float64 `json:"photo_interval"`
	FlightSpeedKmh     float64 `json:"flight_speed_kmh"`
}

// discard drops advisories; sweeps hit the corrective branches
// constantly and logging every one would drown the log.
type discard struct{}

func (discard) Advise(string) {}

// Sweep evaluates the planner over n evenly spaced GSD values in
// [gsdMin, gsdMax], holding the rest of the request fixed. Any
// height/GSD already set on base is ignored.
func Sweep(cam plan.Camera, base plan.Request, gsdMin, gsdMax float64, n int) ([]Sample, error) {
	if n < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 points, got %d", n)
	}
	if gsdMin <= 0 || gsdMax <= gsdMin {
		return nil, fmt.Errorf("invalid sweep range [%g, %g]", gsdMin, gsdMax)
	}

	gsds := floats.Span(make([]float64, n), gsdMin, gsdMax)

	samples := make([]Sample, 0, n)
	for _, g := range gsds {
		req := base
		req.Height = 0
		req.GSD = g

		p, err := plan.Compute(cam, req, discard{})
		if err != nil {
			return nil, fmt.Errorf("sweep at gsd=%g: %w", g, err)
		}
		samples = append(samples, Sample{
			GSD:                p.GSD,
			Height:             p.Height,
			FlightLineDistance: p.FlightLineDistance,
			PhotoInterval:      p.PhotoInterval,
			FlightSpeedKmh:     p.FlightSpeedKmh,
		})
	}
	return samples, nil
}
