// Package api exposes the flight-parameter planner over HTTP.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gsapijaszko/flightplanning/internal/config"
	"github.com/gsapijaszko/flightplanning/internal/db"
	"github.com/gsapijaszko/flightplanning/internal/plan"
	"github.com/gsapijaszko/flightplanning/internal/report"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	db    *db.DB
	cfg   *config.PlannerConfig
	units string
}

func NewServer(database *db.DB, cfg *config.PlannerConfig) *Server {
	if cfg == nil {
		cfg = config.EmptyPlannerConfig()
	}
	return &Server{
		db:    database,
		cfg:   cfg,
		units: cfg.GetUnits(),
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/plan", s.computePlan)
	mux.HandleFunc("/plans", s.listPlans)
	mux.HandleFunc("/plans/", s.showPlan)
	mux.HandleFunc("/defaults", s.showDefaults)
	mux.HandleFunc("/sweep/chart", report.SweepChartHandler(s.cfg))
	return mux
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// PlanRequest is the POST /plan payload. Absent fields fall back to the
// configured defaults; exactly one of height/gsd must be given.
type PlanRequest struct {
	Camera *plan.Camera `json:"camera,omitempty"`

	Height         *float64 `json:"height,omitempty"`
	GSD            *float64 `json:"gsd,omitempty"`
	SideOverlap    *float64 `json:"side_overlap,omitempty"`
	FrontOverlap   *float64 `json:"front_overlap,omitempty"`
	FlightSpeedKmh *float64 `json:"flight_speed_kmh,omitempty"`
	MaxGSD         *float64 `json:"max_gsd,omitempty"`

	// Store controls persistence; defaults to true.
	Store *bool `json:"store,omitempty"`
}

// PlanResponse carries the derived parameters plus any advisory
// corrections the pipeline applied. Advisories are also logged
// server-side, so the text reaches the operator even if the client
// discards them.
type PlanResponse struct {
	ID         string           `json:"id,omitempty"`
	Parameters *plan.Parameters `json:"parameters"`
	Advisories []string         `json:"advisories"`
	SpeedUnits string           `json:"speed_units"`
}

func (s *Server) computePlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var body PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	cam := s.cfg.Camera()
	if body.Camera != nil {
		cam = *body.Camera
	}

	req := s.cfg.Request()
	if body.Height != nil {
		req.Height = *body.Height
	}
	if body.GSD != nil {
		req.GSD = *body.GSD
	}
	if body.SideOverlap != nil {
		req.SideOverlap = *body.SideOverlap
	}
	if body.FrontOverlap != nil {
		req.FrontOverlap = *body.FrontOverlap
	}
	if body.FlightSpeedKmh != nil {
		req.FlightSpeedKmh = *body.FlightSpeedKmh
	}
	if body.MaxGSD != nil {
		req.MaxGSD = *body.MaxGSD
	}

	// Advisories go to the server log and into the response body.
	rec := &plan.Recorder{}
	notifier := plan.MultiNotifier{plan.LogNotifier{Prefix: "[plan] "}, rec}

	p, err := plan.Compute(cam, req, notifier)
	if err != nil {
		var invalid *plan.InvalidInputError
		if errors.As(err, &invalid) {
			s.writeJSONError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := PlanResponse{
		Parameters: p,
		Advisories: rec.Advisories,
		SpeedUnits: s.units,
	}
	if resp.Advisories == nil {
		resp.Advisories = []string{}
	}

	if body.Store == nil || *body.Store {
		id, err := s.db.RecordPlan(cam, req, p)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, "failed to store plan: "+err.Error())
			return
		}
		resp.ID = id
	}

	json.NewEncoder(w).Encode(resp)
}

func (s *Server) listPlans(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 1000 {
			limit = v
		}
	}

	plans, err := s.db.Plans(limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if plans == nil {
		plans = []db.StoredPlan{}
	}

	json.NewEncoder(w).Encode(plans)
}

func (s *Server) showPlan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/plans/")
	if id == "" || strings.Contains(id, "/") {
		s.writeJSONError(w, http.StatusBadRequest, "plan id required")
		return
	}

	sp, err := s.db.Plan(id)
	if errors.Is(err, sql.ErrNoRows) {
		s.writeJSONError(w, http.StatusNotFound, "plan not found")
		return
	}
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	json.NewEncoder(w).Encode(sp)
}

// defaultsResponse reports the resolved defaults, not the raw config
// file, so unset fields show the values actually used.
type defaultsResponse struct {
	Camera     plan.Camera  `json:"camera"`
	Request    plan.Request `json:"request"`
	SpeedUnits string       `json:"speed_units"`
}

func (s *Server) showDefaults(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	json.NewEncoder(w).Encode(defaultsResponse{
		Camera:     s.cfg.Camera(),
		Request:    s.cfg.Request(),
		SpeedUnits: s.units,
	})
}
