package report

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gsapijaszko/flightplanning/internal/config"
)

// RenderSweepChart writes an HTML line chart of a GSD sweep to w:
// flight height, line spacing, and repaired cruise speed against the
// target GSD.
func RenderSweepChart(w io.Writer, samples []Sample) error {
	x := make([]string, 0, len(samples))
	height := make([]opts.LineData, 0, len(samples))
	spacing := make([]opts.LineData, 0, len(samples))
	speed := make([]opts.LineData, 0, len(samples))
	for _, s := range samples {
		x = append(x, fmt.Sprintf("%.2f", s.GSD))
		height = append(height, opts.LineData{Value: s.Height})
		spacing = append(spacing, opts.LineData{Value: s.FlightLineDistance})
		speed = append(speed, opts.LineData{Value: s.FlightSpeedKmh})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Flight parameter sweep", Width: "1100px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Flight parameters vs GSD", Subtitle: fmt.Sprintf("%d samples", len(samples))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "GSD (cm/px)", NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: "m / km/h"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	line.SetXAxis(x).
		AddSeries("flight height (m)", height).
		AddSeries("line spacing (m)", spacing).
		AddSeries("cruise speed (km/h)", speed)

	return line.Render(w)
}

// SweepChartHandler serves the sweep chart as a debugging page.
// Query params:
//   - gsd_min, gsd_max (cm/px; defaults 1 and 10)
//   - points (default 40, capped at 500)
func SweepChartHandler(cfg *config.PlannerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gsdMin := queryFloat(r, "gsd_min", 1)
		gsdMax := queryFloat(r, "gsd_max", 10)

		n := 40
		if v := r.URL.Query().Get("points"); v != "" {
			if p, err := strconv.Atoi(v); err == nil && p >= 2 && p <= 500 {
				n = p
			}
		}

		samples, err := Sweep(cfg.Camera(), cfg.Request(), gsdMin, gsdMax, n)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var buf bytes.Buffer
		if err := RenderSweepChart(&buf, samples); err != nil {
			http.Error(w, fmt.Sprintf("failed to render chart: %v", err), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(buf.Bytes())
	}
}

func queryFloat(r *http.Request, key string, fallback float64) float64 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
