package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gsapijaszko/flightplanning/internal/config"
	"github.com/gsapijaszko/flightplanning/internal/plan"
)

func TestResolveMissionDefaults(t *testing.T) {
	cam, req := resolveMission(config.EmptyPlannerConfig(), overrides{
		SideOverlap:  -1,
		FrontOverlap: -1,
		MaxGSD:       -1,
		GSD:          4,
	})

	wantCam := plan.DefaultCamera()
	if diff := cmp.Diff(wantCam, cam); diff != "" {
		t.Errorf("camera mismatch (-want +got):\n%s", diff)
	}

	wantReq := plan.DefaultRequest()
	wantReq.GSD = 4
	if diff := cmp.Diff(wantReq, req); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveMissionOverrides(t *testing.T) {
	cam, req := resolveMission(config.EmptyPlannerConfig(), overrides{
		FocalLength:  24,
		ImageWidth:   5472,
		ImageHeight:  3648,
		SideOverlap:  0.6,
		FrontOverlap: 0.75,
		Speed:        36,
		MaxGSD:       5,
		Height:       120,
	})

	wantCam := plan.Camera{FocalLength35: 24, ImageWidthPx: 5472, ImageHeightPx: 3648}
	if diff := cmp.Diff(wantCam, cam); diff != "" {
		t.Errorf("camera mismatch (-want +got):\n%s", diff)
	}

	wantReq := plan.Request{
		Height:         120,
		SideOverlap:    0.6,
		FrontOverlap:   0.75,
		FlightSpeedKmh: 36,
		MaxGSD:         5,
	}
	if diff := cmp.Diff(wantReq, req); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveMissionZeroOverlapIsExplicit(t *testing.T) {
	// 0 is a legal overlap; only the -1 sentinel means "use default".
	_, req := resolveMission(config.EmptyPlannerConfig(), overrides{
		SideOverlap:  0,
		FrontOverlap: -1,
		MaxGSD:       -1,
		GSD:          4,
	})
	if req.SideOverlap != 0 {
		t.Errorf("SideOverlap = %v, want explicit 0", req.SideOverlap)
	}
	if req.FrontOverlap != 0.8 {
		t.Errorf("FrontOverlap = %v, want default 0.8", req.FrontOverlap)
	}
}
