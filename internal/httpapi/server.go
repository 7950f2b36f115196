// Package httpapi exposes tempyd's routes: the forwarding endpoint tempy
// clients hit when they have no API key of their own, and a small stats
// endpoint over the usage store.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/datatypes"

	"github.com/noprobelm/tempy/internal/cache"
	"github.com/noprobelm/tempy/internal/observability"
	"github.com/noprobelm/tempy/internal/store"
	"github.com/noprobelm/tempy/internal/weatherapi"
)

type Server struct {
	client *weatherapi.Client
	cache  *cache.Cache
	repo   *store.Repo
}

// NewServer wires the upstream client, the response cache, and the usage
// store. repo may be nil, which disables recording and the stats endpoint.
func NewServer(client *weatherapi.Client, forecastCache *cache.Cache, repo *store.Repo) *Server {
	return &Server{client: client, cache: forecastCache, repo: repo}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleForward)
	r.Get("/api/stats", s.handleStats)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// handleForward serves the request contract tempy relies on: the location
// rides in a request header, and whatever weatherapi.com answers (status and
// body both) is relayed verbatim so clients see the same schema either way.
func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	location := strings.TrimSpace(r.Header.Get(weatherapi.LocationHeader))
	if location == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "location header is required"})
		return
	}

	key := cache.Key(location)
	if body, ok := s.cache.Get(key); ok {
		observability.CacheHit()
		s.record(r, location, http.StatusOK, true, body)
		relay(w, http.StatusOK, body)
		return
	}
	observability.CacheMiss()

	status, body, err := s.client.ForecastRaw(r.Context(), location)
	if err != nil {
		slog.Error("upstream request failed", "location", location, "error", err)
		s.record(r, location, http.StatusBadGateway, false, nil)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream unreachable"})
		return
	}

	if status == http.StatusOK {
		s.cache.Set(key, body)
	}
	s.record(r, location, status, false, body)
	relay(w, status, body)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "usage store disabled"})
		return
	}
	stats, err := s.repo.Stats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to read stats"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func relay(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) record(r *http.Request, location string, status int, hit bool, body []byte) {
	if s.repo == nil {
		return
	}
	rec := &store.UsageRecord{
		RemoteIP: clientIP(r),
		Location: location,
		Status:   status,
		CacheHit: hit,
		Resolved: resolvedLocation(body),
	}
	if err := s.repo.Insert(r.Context(), rec); err != nil {
		slog.Warn("usage record insert failed", "error", err)
	}
}

// resolvedLocation pulls the location block out of a successful upstream body
// so the store keeps what the API matched, not just what the client asked.
func resolvedLocation(body []byte) datatypes.JSON {
	if len(body) == 0 {
		return nil
	}
	var probe struct {
		Location weatherapi.Location `json:"location"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || probe.Location.Name == "" {
		return nil
	}
	out, err := json.Marshal(probe.Location)
	if err != nil {
		return nil
	}
	return out
}

// clientIP tolerates RemoteAddr both with and without a port; chi's RealIP
// middleware rewrites it to a bare address.
func clientIP(r *http.Request) string {
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}
