// Command plan computes the flight parameters for a single survey
// mission and prints them, without starting the planning service.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gsapijaszko/flightplanning/internal/config"
	"github.com/gsapijaszko/flightplanning/internal/plan"
	"github.com/gsapijaszko/flightplanning/internal/report"
	"github.com/gsapijaszko/flightplanning/internal/units"
)

var (
	flightHeight = flag.Float64("height", 0, "Target flight height in m (set this or -gsd)")
	gsd          = flag.Float64("gsd", 0, "Target ground resolution in cm/px (set this or -height)")
	focalLength  = flag.Float64("focal-length", 0, "35mm-equivalent focal length in mm (0 = configured default)")
	imageWidth   = flag.Int("image-width", 0, "Image width in px (0 = configured default)")
	imageHeight  = flag.Int("image-height", 0, "Image height in px (0 = configured default)")
	sideOverlap  = flag.Float64("side-overlap", -1, "Side overlap fraction (-1 = configured default)")
	frontOverlap = flag.Float64("front-overlap", -1, "Front overlap fraction (-1 = configured default)")
	speed        = flag.Float64("speed", 0, "Requested cruise speed in km/h (0 = configured default)")
	maxGSD       = flag.Float64("max-gsd", -1, "GSD cap in cm/px, 0 disables (-1 = configured default)")
	speedUnits   = flag.String("units", "", "Speed units for display: "+units.GetValidUnitsString())
	jsonOut      = flag.Bool("json", false, "Print the result as JSON")
	plotFile     = flag.String("plot", "", "Write a coverage diagram to this file (extension selects format)")
	configFile   = flag.String("config", config.DefaultConfigPath, "Path to the planner defaults file")
)

// overrides carries the flag values that replace configured defaults.
// Sentinels mark unset flags: 0 for positive-only values, -1 for
// fractions where 0 is meaningful.
type overrides struct {
	FocalLength  float64
	ImageWidth   int
	ImageHeight  int
	SideOverlap  float64
	FrontOverlap float64
	Speed        float64
	MaxGSD       float64
	Height       float64
	GSD          float64
}

func resolveMission(cfg *config.PlannerConfig, o overrides) (plan.Camera, plan.Request) {
	cam := cfg.Camera()
	if o.FocalLength > 0 {
		cam.FocalLength35 = o.FocalLength
	}
	if o.ImageWidth > 0 {
		cam.ImageWidthPx = o.ImageWidth
	}
	if o.ImageHeight > 0 {
		cam.ImageHeightPx = o.ImageHeight
	}

	req := cfg.Request()
	if o.SideOverlap >= 0 {
		req.SideOverlap = o.SideOverlap
	}
	if o.FrontOverlap >= 0 {
		req.FrontOverlap = o.FrontOverlap
	}
	if o.Speed > 0 {
		req.FlightSpeedKmh = o.Speed
	}
	if o.MaxGSD >= 0 {
		req.MaxGSD = o.MaxGSD
	}
	req.Height = o.Height
	req.GSD = o.GSD
	return cam, req
}

func main() {
	flag.Parse()

	cfg, err := config.LoadPlannerConfig(*configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = config.EmptyPlannerConfig()
		} else {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	displayUnits := cfg.GetUnits()
	if *speedUnits != "" {
		if !units.IsValid(*speedUnits) {
			log.Fatalf("invalid units %q, valid units are: %s", *speedUnits, units.GetValidUnitsString())
		}
		displayUnits = *speedUnits
	}

	cam, req := resolveMission(cfg, overrides{
		FocalLength:  *focalLength,
		ImageWidth:   *imageWidth,
		ImageHeight:  *imageHeight,
		SideOverlap:  *sideOverlap,
		FrontOverlap: *frontOverlap,
		Speed:        *speed,
		MaxGSD:       *maxGSD,
		Height:       *flightHeight,
		GSD:          *gsd,
	})

	p, err := plan.Compute(cam, req, plan.LogNotifier{Prefix: "advisory: "})
	if err != nil {
		log.Fatalf("%v", err)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(p); err != nil {
			log.Fatalf("failed to encode result: %v", err)
		}
	} else {
		printParameters(p, displayUnits)
	}

	if *plotFile != "" {
		if err := report.CoveragePlot(*plotFile, cam, p); err != nil {
			log.Fatalf("failed to write coverage diagram: %v", err)
		}
		log.Printf("coverage diagram written to %s", *plotFile)
	}
}

func printParameters(p *plan.Parameters, displayUnits string) {
	fmt.Printf("Flight height:         %.2f m\n", p.Height)
	fmt.Printf("Ground resolution:     %.4f cm/px\n", p.GSD)
	fmt.Printf("Flight line distance:  %.2f m\n", p.FlightLineDistance)
	fmt.Printf("Image ground height:   %.2f m\n", p.GroundHeight)
	fmt.Printf("Minimum shutter speed: %s s\n", p.MinimumShutterSpeed)
	fmt.Printf("Photo interval:        %.1f s\n", p.PhotoInterval)
	fmt.Printf("Flight speed:          %.2f %s\n", units.ConvertSpeed(p.FlightSpeedKmh, displayUnits), displayUnits)
}
