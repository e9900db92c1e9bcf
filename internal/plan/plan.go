// Package plan derives physically consistent capture parameters for a
// camera-equipped aerial survey flight line: flight height, ground
// sampling distance (GSD), flight-line spacing, minimum shutter speed,
// photo interval, and cruise speed.
package plan

import (
	"fmt"
	"math"
)

// Physical and operational constants.
const (
	// Diag35mm is the diagonal of a full-frame 36x24mm sensor in mm.
	// Focal lengths are given as 35mm equivalents, so all ground
	// geometry is solved against this reference diagonal.
	Diag35mm = 43.266615305567875 // sqrt(36^2 + 24^2)

	// MinPhotoInterval is the shortest capture interval (seconds) the
	// camera can sustain. Shorter derived intervals are repaired by
	// slowing the aircraft down.
	MinPhotoInterval = 2.0

	// MaxPixelRoll is the maximum tolerable motion blur in pixels
	// during one exposure (photogrammetric rule of thumb).
	MaxPixelRoll = 1.2

	// intervalStep is the granularity the camera intervalometer
	// accepts; derived intervals are rounded up to this step.
	intervalStep = 0.1

	// intervalTolerance is how close an interval must be to a step
	// multiple to count as already aligned.
	intervalTolerance = 1e-4
)

// Camera describes the optics and sensor of the survey camera.
type Camera struct {
	FocalLength35 float64 `json:"focal_length_35"` // 35mm-equivalent focal length, mm
	ImageWidthPx  int     `json:"image_width_px"`
	ImageHeightPx int     `json:"image_height_px"`
}

// DefaultCamera returns the camera used when the caller does not
// specify one (a typical 20mm 12MP survey drone camera).
func DefaultCamera() Camera {
	return Camera{
		FocalLength35: 20,
		ImageWidthPx:  4000,
		ImageHeightPx: 3000,
	}
}

// DiagPx returns the sensor diagonal in pixels.
func (c Camera) DiagPx() float64 {
	w := float64(c.ImageWidthPx)
	h := float64(c.ImageHeightPx)
	return math.Sqrt(w*w + h*h)
}

// Request holds the mission targets for one computation. Exactly one of
// Height (m) or GSD (cm/px) must be set; zero means unset. MaxGSD of
// zero disables the GSD cap.
type Request struct {
	Height         float64 `json:"height"`
	GSD            float64 `json:"gsd"`
	SideOverlap    float64 `json:"side_overlap"`
	FrontOverlap   float64 `json:"front_overlap"`
	FlightSpeedKmh float64 `json:"flight_speed_kmh"`
	MaxGSD         float64 `json:"max_gsd"`
}

// DefaultRequest returns a Request with the standard overlaps and
// cruise speed. Height/GSD are left unset for the caller to fill in.
func DefaultRequest() Request {
	return Request{
		SideOverlap:    0.8,
		FrontOverlap:   0.8,
		FlightSpeedKmh: 54,
	}
}

// Parameters is the derived flight-parameter record. It is constructed
// once, after all pipeline stages complete, and never mutated.
type Parameters struct {
	Height              float64 `json:"height"`                // m
	GSD                 float64 `json:"gsd"`                   // cm/px
	FlightLineDistance  float64 `json:"flight_line_distance"`  // m between adjacent lines
	MinimumShutterSpeed string  `json:"minimum_shutter_speed"` // "1/N" seconds
	PhotoInterval       float64 `json:"photo_interval"`        // s, >= MinPhotoInterval
	GroundHeight        float64 `json:"ground_height"`         // m covered along-track by one image
	FrontOverlap        float64 `json:"front_overlap"`
	FlightSpeedKmh      float64 `json:"flight_speed_kmh"` // possibly reduced from the request
}

// InvalidInputError reports a request that does not identify a unique
// mission geometry.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid flight parameters: " + e.Reason
}

// Compute runs the parameter-derivation pipeline: geometry resolution,
// line spacing, shutter timing, and capture-interval repair. It is pure
// and safe for concurrent use; advisory corrections are reported
// through n (nil falls back to the standard logger).
func Compute(cam Camera, req Request, n Notifier) (*Parameters, error) {
	if n == nil {
		n = defaultNotifier
	}

	hasHeight := req.Height != 0
	hasGSD := req.GSD != 0
	if hasHeight && hasGSD {
		return nil, &InvalidInputError{Reason: "height and gsd are mutually exclusive, set only one"}
	}
	if !hasHeight && !hasGSD {
		return nil, &InvalidInputError{Reason: "one of height or gsd is required"}
	}

	diagPx := cam.DiagPx()

	// Resolve the height/GSD pair from whichever target was given.
	// The two branches are algebraic inverses of each other: the
	// diagonal ground footprint relates to flight height through the
	// 35mm-equivalent focal length.
	height := req.Height
	gsd := req.GSD
	var groundWidth float64
	if hasHeight {
		multFactor := height / cam.FocalLength35
		diagGround := Diag35mm * multFactor
		gsd = diagGround / diagPx * 100
		if req.MaxGSD > 0 && gsd > req.MaxGSD {
			// Single corrective pass: rescale the height so the
			// relation yields MaxGSD, then recompute once.
			height *= req.MaxGSD / gsd
			n.Advise(fmt.Sprintf("GSD capped at %.4g cm/px: flight height adjusted down to %.2f m", req.MaxGSD, height))
			multFactor = height / cam.FocalLength35
			diagGround = Diag35mm * multFactor
			gsd = diagGround / diagPx * 100
		}
		groundWidth = float64(cam.ImageWidthPx) * gsd / 100
	} else {
		groundWidth = float64(cam.ImageWidthPx) * gsd / 100
		diagGround := diagPx * gsd / 100
		multFactor := diagGround / Diag35mm
		height = multFactor * cam.FocalLength35
	}

	// Spacing between adjacent flight lines for the requested side
	// overlap. Overlaps outside [0,1) are the caller's problem: they
	// produce non-physical spacing but are not rejected.
	flightLineDistance := groundWidth * (1 - req.SideOverlap)

	// Minimum shutter speed for the requested cruise speed. Advisory
	// only: a later speed reduction does not loosen it.
	flightSpeedMs := req.FlightSpeedKmh / 3.6
	speedPxPerSecond := flightSpeedMs / (gsd * 0.01)
	shutterDenom := math.RoundToEven(speedPxPerSecond / MaxPixelRoll)
	minimumShutterSpeed := fmt.Sprintf("1/%d", int64(shutterDenom))

	// Capture interval from the along-track footprint and front
	// overlap, repaired against camera limits. Both repairs keep the
	// overlap geometry fixed and reduce speed instead; they are
	// mutually exclusive and fire at most once.
	groundHeight := float64(cam.ImageHeightPx) * gsd / 100
	groundHeightOverlap := groundHeight * req.FrontOverlap
	groundAllowedOffset := groundHeight - groundHeightOverlap
	photoInterval := groundAllowedOffset / flightSpeedMs
	flightSpeedKmh := req.FlightSpeedKmh

	if photoInterval < MinPhotoInterval {
		photoInterval = MinPhotoInterval
		flightSpeedMs = groundAllowedOffset / MinPhotoInterval
		flightSpeedKmh = flightSpeedMs * 3.6
		n.Advise(fmt.Sprintf("photo interval below %.0fs minimum: flight speed reduced to %.2f km/h", MinPhotoInterval, flightSpeedKmh))
	} else if r := math.Round(photoInterval/intervalStep) * intervalStep; math.Abs(photoInterval-r) > intervalTolerance {
		photoInterval = math.Ceil(photoInterval/intervalStep) * intervalStep
		flightSpeedMs = groundAllowedOffset / photoInterval
		flightSpeedKmh = flightSpeedMs * 3.6
		n.Advise(fmt.Sprintf("photo interval rounded up to %.1fs: flight speed reduced to %.2f km/h", photoInterval, flightSpeedKmh))
	}

	return &Parameters{
		Height:              height,
		GSD:                 gsd,
		FlightLineDistance:  flightLineDistance,
		MinimumShutterSpeed: minimumShutterSpeed,
		PhotoInterval:       photoInterval,
		GroundHeight:        groundHeight,
		FrontOverlap:        req.FrontOverlap,
		FlightSpeedKmh:      flightSpeedKmh,
	}, nil
}
