// Package fixtures serves canned events over the search endpoint contract.
// It backs local demos and end-to-end tests; it does not search anything.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"eventscout/internal/domain"
)

//go:embed events.yaml
var defaultEventsYAML []byte

const cityPlaceholder = "{city}"

type catalogFile struct {
	Events []domain.Event `yaml:"events"`
}

// Catalog is a fixed list of sample events
type Catalog struct {
	events []domain.Event
}

// DefaultCatalog returns the embedded sample events
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultEventsYAML)
}

// ParseCatalog reads a YAML document with a top-level "events" list
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture events: %w", err)
	}
	return &Catalog{events: f.Events}, nil
}

// Len returns the number of sample events
func (c *Catalog) Len() int {
	return len(c.events)
}

// For returns at most max events with the city placeholder filled in
func (c *Catalog) For(city string, max int) []domain.Event {
	if max > len(c.events) {
		max = len(c.events)
	}
	if max < 0 {
		max = 0
	}
	slug := strings.ReplaceAll(strings.ToLower(city), " ", "-")

	out := make([]domain.Event, 0, max)
	for _, e := range c.events[:max] {
		e.Name = strings.ReplaceAll(e.Name, cityPlaceholder, city)
		e.Location = strings.ReplaceAll(e.Location, cityPlaceholder, city)
		e.Link = strings.ReplaceAll(e.Link, cityPlaceholder, slug)
		out = append(out, e)
	}
	return out
}

// Options tweak the handler, mostly for tests
type Options struct {
	Latency    time.Duration // delay before answering
	FailStatus int           // when non-zero every search answers with this status
}

// NewHandler routes POST / and POST /api/events to the catalog
func NewHandler(catalog *Catalog, logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{catalog: catalog, logger: logger.Named("fixtures"), opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Post("/", h.search)
	r.Post("/api/events", h.search)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

type handler struct {
	catalog *Catalog
	logger  *zap.Logger
	opts    Options
}

func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	if h.opts.Latency > 0 {
		select {
		case <-time.After(h.opts.Latency):
		case <-r.Context().Done():
			return
		}
	}

	var params domain.SearchParams
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&params); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	params.City = strings.TrimSpace(params.City)
	if params.City == "" {
		http.Error(w, "city is required", http.StatusBadRequest)
		return
	}
	if params.MaxEvents <= 0 {
		params.MaxEvents = domain.DefaultMaxEvents
	}

	if h.opts.FailStatus != 0 {
		h.logger.Info("failing search on purpose", zap.Int("status", h.opts.FailStatus))
		http.Error(w, "fixture failure", h.opts.FailStatus)
		return
	}

	events := h.catalog.For(params.City, params.MaxEvents)
	h.logger.Info("serving fixture events",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("city", params.City),
		zap.Int("events", len(events)))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(events); err != nil {
		h.logger.Warn("failed to write response", zap.Error(err))
	}
}
