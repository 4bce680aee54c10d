// Package api exposes density reconstruction over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/smlm-data/gsdrecon/internal/db"
	"github.com/smlm-data/gsdrecon/internal/imageio"
	"github.com/smlm-data/gsdrecon/internal/monitoring"
	"github.com/smlm-data/gsdrecon/internal/recon"
)

// maxUploadBytes caps reconstruction uploads (64 MiB covers a 16-bit
// 4096x4096 frame with room to spare).
const maxUploadBytes = 64 << 20

type Server struct {
	db      *db.DB
	workers int // 0 selects the recon default
}

func NewServer(database *db.DB, workers int) *Server {
	return &Server{
		db:      database,
		workers: workers,
	}
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("gsdrecon: POST an event-count image to /reconstruct?bandwidth=5.0\n"))
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/reconstruct", s.reconstructHandler)
	mux.HandleFunc("/runs", s.listRunsHandler)
	mux.HandleFunc("/healthz", s.healthHandler)
	mux.HandleFunc("/", s.homeHandler)
	return mux
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}

// reconstructHandler accepts a PNG or TIFF event-count image in the request
// body, runs the reconstruction, and responds with a 16-bit grayscale PNG.
// Query params: bandwidth (default 5.0), workers (optional).
func (s *Server) reconstructHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	bandwidth := recon.DefaultBandwidth
	if v := r.URL.Query().Get("bandwidth"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("bad bandwidth %q", v), http.StatusBadRequest)
			return
		}
		bandwidth = f
	}

	workers := s.workers
	if v := r.URL.Query().Get("workers"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, fmt.Sprintf("bad workers %q", v), http.StatusBadRequest)
			return
		}
		workers = n
	}

	src, err := imageio.DecodeSource(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to decode input image: %v", err), http.StatusBadRequest)
		return
	}

	start := time.Now()
	res, err := recon.Reconstruct(r.Context(), src, recon.KernelParams{Bandwidth: bandwidth},
		recon.WithWorkers(workers))
	if errors.Is(err, recon.ErrInvalidBandwidth) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("reconstruction failed: %v", err), http.StatusInternalServerError)
		return
	}

	run := &db.Run{
		Source:         "upload",
		Width:          src.Width(),
		Height:         src.Height(),
		Bandwidth:      bandwidth,
		MinDensity:     res.MinDensity,
		MaxDensity:     res.MaxDensity,
		DurationMillis: time.Since(start).Milliseconds(),
	}
	if s.db != nil {
		if err := s.db.InsertRun(run); err != nil {
			// The image is still good; don't fail the request over bookkeeping.
			monitoring.Logf("failed to record run: %v", err)
		}
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Run-Id", run.RunID)
	if err := imageio.EncodePNG(w, res.Output); err != nil {
		monitoring.Logf("failed to write reconstruction response: %v", err)
	}
}

func (s *Server) listRunsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.db == nil {
		http.Error(w, "no run store configured", http.StatusNotFound)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, fmt.Sprintf("bad limit %q", v), http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := s.db.ListRuns(limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to list runs: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(runs); err != nil {
		monitoring.Logf("failed to encode runs: %v", err)
	}
}
