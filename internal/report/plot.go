package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gsapijaszko/flightplanning/internal/plan"
)

// CoveragePlot renders a PNG diagram of the computed coverage pattern:
// image footprints on three adjacent flight lines, spaced at the
// derived flight-line distance, with successive exposures offset by the
// allowed along-track advance. The file extension on path selects the
// output format (gonum/plot supports png, pdf, svg and others).
func CoveragePlot(path string, cam plan.Camera, p *plan.Parameters) error {
	groundWidth := float64(cam.ImageWidthPx) * p.GSD / 100
	advance := p.GroundHeight * (1 - p.FrontOverlap)

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("Coverage at %.1f m (GSD %.2f cm/px)", p.Height, p.GSD)
	pl.X.Label.Text = "across track (m)"
	pl.Y.Label.Text = "along track (m)"

	const lines = 3
	const exposures = 4
	for line := 0; line < lines; line++ {
		cx := float64(line) * p.FlightLineDistance
		for exp := 0; exp < exposures; exp++ {
			cy := float64(exp) * advance
			rect, err := footprintOutline(cx, cy, groundWidth, p.GroundHeight)
			if err != nil {
				return fmt.Errorf("failed to build footprint outline: %w", err)
			}
			rect.Width = vg.Points(1)
			pl.Add(rect)
		}
	}

	if err := pl.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save coverage plot: %w", err)
	}
	return nil
}

// footprintOutline returns the closed outline of one image footprint
// centred at (cx, cy).
func footprintOutline(cx, cy, w, h float64) (*plotter.Line, error) {
	pts := plotter.XYs{
		{X: cx - w/2, Y: cy - h/2},
		{X: cx + w/2, Y: cy - h/2},
		{X: cx + w/2, Y: cy + h/2},
		{X: cx - w/2, Y: cy + h/2},
		{X: cx - w/2, Y: cy - h/2},
	}
	return plotter.NewLine(pts)
}
