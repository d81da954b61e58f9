// Package server exposes stepped hull construction over HTTP so a browser
// viewer can fetch the hull after any number of insertions.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/golang/geo/r3"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"hullstep/src/physics/geometry"
	"hullstep/src/physics/pointcloud"
	"hullstep/src/render"
)

const (
	DefaultSeed  = 8367
	DefaultCount = 20
)

type Config struct {
	MaxPoints      int
	AllowedOrigins []string
	Logger         *slog.Logger
}

type Server struct {
	cfg    Config
	log    *slog.Logger
	router *mux.Router
}

// HullRequest is the body of POST /api/hull.
type HullRequest struct {
	Points []r3.Vector `json:"points"`
	Step   *int        `json:"step,omitempty"` // nil means the final hull
}

type HullResponse struct {
	*geometry.Mesh
	Vertices []int `json:"vertices"`
	Closed   bool  `json:"closed"`
}

func New(cfg Config) *Server {
	if cfg.MaxPoints <= 0 {
		cfg.MaxPoints = 5000
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	s := &Server{cfg: cfg, log: log, router: mux.NewRouter()}

	// Routes sit on the root router so a method mismatch answers 405.
	s.router.HandleFunc("/api/health", s.healthHandler).Methods("GET")
	s.router.HandleFunc("/api/hull", s.generatedHullHandler).Methods("GET")
	s.router.HandleFunc("/api/hull", s.submittedHullHandler).Methods("POST")
	s.router.HandleFunc("/api/render", s.renderHandler).Methods("GET")
	return s
}

// Handler returns the router wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.router)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) generatedHullHandler(w http.ResponseWriter, r *http.Request) {
	points, step, err := s.cloudFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m, ok := s.build(w, r, points, step)
	if !ok {
		return
	}
	s.writeJSON(w, newHullResponse(m))
}

func (s *Server) submittedHullHandler(w http.ResponseWriter, r *http.Request) {
	var req HullRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.Points) > s.cfg.MaxPoints {
		http.Error(w, fmt.Sprintf("at most %d points are accepted", s.cfg.MaxPoints), http.StatusBadRequest)
		return
	}
	step := geometry.FinalStep
	if req.Step != nil {
		step = *req.Step
	}
	m, ok := s.build(w, r, req.Points, step)
	if !ok {
		return
	}
	s.writeJSON(w, newHullResponse(m))
}

func (s *Server) renderHandler(w http.ResponseWriter, r *http.Request) {
	points, step, err := s.cloudFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	mode := render.ModeFilled
	switch r.URL.Query().Get("mode") {
	case "", "filled":
	case "wireframe":
		mode = render.ModeWireframe
	default:
		http.Error(w, "mode must be filled or wireframe", http.StatusBadRequest)
		return
	}

	m, ok := s.build(w, r, points, step)
	if !ok {
		return
	}
	buffers, err := render.NewBuffers(m)
	if err != nil {
		s.log.Error("render buffers", "err", err)
		http.Error(w, "Failed to build render buffers", http.StatusInternalServerError)
		return
	}
	f := &frame{Mode: mode.String(), Step: m.Step}
	if err := render.Draw(f, buffers, mode); err != nil {
		s.log.Error("render frame", "err", err)
		http.Error(w, "Failed to render frame", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, f)
}

// build runs the hull and writes the error response itself when it fails.
func (s *Server) build(w http.ResponseWriter, r *http.Request, points []r3.Vector, step int) (*geometry.Mesh, bool) {
	start := time.Now()
	m, err := geometry.BuildHullContext(r.Context(), points, step)
	switch {
	case err == nil:
	case errors.Is(err, geometry.ErrInsufficientPoints), errors.Is(err, geometry.ErrDegenerateInput):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return nil, false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.log.Warn("hull abandoned", "points", len(points), "err", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return nil, false
	default:
		s.log.Error("hull failed", "points", len(points), "err", err)
		http.Error(w, "Failed to build hull", http.StatusInternalServerError)
		return nil, false
	}

	s.log.Info("hull built",
		"points", len(points),
		"step", m.Step,
		"faces", m.Len(),
		"elapsed", time.Since(start))
	return m, true
}

func (s *Server) cloudFromQuery(r *http.Request) ([]r3.Vector, int, error) {
	q := r.URL.Query()

	seed := int64(DefaultSeed)
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid seed %q", v)
		}
		seed = n
	}

	count := DefaultCount
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, 0, fmt.Errorf("invalid count %q", v)
		}
		count = n
	}
	if count > s.cfg.MaxPoints {
		return nil, 0, fmt.Errorf("at most %d points are accepted", s.cfg.MaxPoints)
	}

	step := geometry.FinalStep
	if v := q.Get("step"); v != "" && v != "final" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid step %q", v)
		}
		step = n
	}

	return pointcloud.Random(seed, count), step, nil
}

func newHullResponse(m *geometry.Mesh) HullResponse {
	return HullResponse{
		Mesh:     m,
		Vertices: m.VertexIndices(),
		Closed:   m.IsClosed(),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("write response", "err", err)
	}
}
