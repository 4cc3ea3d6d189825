package web

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gridcal/internal/config"
	"gridcal/internal/layout"
	appLog "gridcal/internal/log"
	"gridcal/internal/model"
)

// Server exposes a small preview API next to the export pipeline: the latest
// rendered PNG, the schedule entries, and the solved grid dimensions.
type Server struct {
	cfg *config.Config
	mux *http.ServeMux

	// In-memory cache for the parsed schedule so /api/entries and
	// /api/dimensions do not re-read and re-parse the file on every request.
	entriesMu    sync.RWMutex
	entriesCache *entriesCache
}

// entriesCache holds the last parsed schedule and its timestamp.
type entriesCache struct {
	entries   []model.Entry
	updatedAt time.Time
}

const entriesCacheTTL = 30 * time.Second

// NewServer constructs a new Server.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// StartServer starts an HTTP server bound to cfg.Listen. Graceful shutdown is
// the caller's job; this helper only covers the simple blocking case.
func StartServer(_ context.Context, cfg *config.Config) error {
	s := NewServer(cfg)
	appLog.Info("starting HTTP server", "listen", "http://"+cfg.Listen)
	return http.ListenAndServe(cfg.Listen, s.Handler())
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/preview.png", s.handlePreview)
	s.mux.HandleFunc("/api/entries", s.handleEntries)
	s.mux.HandleFunc("/api/dimensions", s.handleDimensions)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handlePreview serves the most recent export from the output directory.
// Exports are date-stamped, so the lexically greatest name is the newest.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	path, err := latestExport(s.cfg.OutputDir)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

func latestExport(dir string) (string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return "", os.ErrNotExist
	}
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}

// loadEntries returns the parsed schedule, serving from the short-lived cache
// when fresh.
func (s *Server) loadEntries() ([]model.Entry, error) {
	now := time.Now()

	s.entriesMu.RLock()
	ec := s.entriesCache
	s.entriesMu.RUnlock()
	if ec != nil && now.Sub(ec.updatedAt) < entriesCacheTTL {
		return ec.entries, nil
	}

	entries, err := model.LoadEntries(s.cfg.SchedulePath)
	if err != nil {
		return nil, err
	}

	s.entriesMu.Lock()
	s.entriesCache = &entriesCache{entries: entries, updatedAt: time.Now()}
	s.entriesMu.Unlock()
	return entries, nil
}

// entriesResponse is the JSON response shape for /api/entries.
type entriesResponse struct {
	Entries []model.Entry `json:"entries"`
}

func (s *Server) handleEntries(w http.ResponseWriter, _ *http.Request) {
	entries, err := s.loadEntries()
	if err != nil {
		appLog.Error("api entries: load failed", err, "path", s.cfg.SchedulePath)
		writeError(w, http.StatusInternalServerError, "failed to load schedule")
		return
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	writeJSON(w, http.StatusOK, entriesResponse{Entries: entries})
}

// dimensionsResponse is the JSON response shape for /api/dimensions.
type dimensionsResponse struct {
	Dimensions model.GridDimensions `json:"dimensions"`
	Columns    int                  `json:"columns"`
	StartHour  int                  `json:"start_hour"`
	HourRange  int                  `json:"hour_range"`
}

// handleDimensions solves the grid for the current schedule and style config
// so the UI can show the export shape before a capture runs.
func (s *Server) handleDimensions(w http.ResponseWriter, _ *http.Request) {
	entries, err := s.loadEntries()
	if err != nil {
		appLog.Error("api dimensions: load failed", err, "path", s.cfg.SchedulePath)
		writeError(w, http.StatusInternalServerError, "failed to load schedule")
		return
	}

	lc := s.cfg.Layout()
	start, hours := layout.HourRange(entries)
	dims := layout.SolveForEntries(entries, lc, s.cfg.Days)

	writeJSON(w, http.StatusOK, dimensionsResponse{
		Dimensions: dims,
		Columns:    s.cfg.Days,
		StartHour:  start,
		HourRange:  hours,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
