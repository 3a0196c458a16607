package rest

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const probeTimeout = 3 * time.Second

// HealthCheck is one dependency probed by /ready and /health. A failing
// critical check takes the service down; any other failure only degrades it.
type HealthCheck struct {
	Name     string
	Critical bool
	Ping     func(ctx context.Context) error
}

// HealthHandler serves the liveness, readiness and health endpoints.
type HealthHandler struct {
	version string
	checks  []HealthCheck
	now     func() time.Time
}

func NewHealthHandler(version string, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{version: version, checks: checks, now: time.Now}
}

type healthResponse struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]componentStatus `json:"components,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

type componentStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live reports that the process is serving.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready answers 503 until every critical dependency responds.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	var critical []HealthCheck
	for _, c := range h.checks {
		if c.Critical {
			critical = append(critical, c)
		}
	}
	status, _ := h.run(r.Context(), critical)
	code := http.StatusOK
	if status == "down" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, healthResponse{Status: status, Timestamp: h.now()})
}

// Health probes every dependency and reports each one.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, components := h.run(r.Context(), h.checks)
	code := http.StatusOK
	if status == "down" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, healthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  h.now(),
	})
}

func (h *HealthHandler) run(ctx context.Context, checks []HealthCheck) (string, map[string]componentStatus) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var (
		mu         sync.Mutex
		components = make(map[string]componentStatus, len(checks))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range checks {
		g.Go(func() error {
			st := probe(gctx, c.Ping)
			mu.Lock()
			components[c.Name] = st
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	overall := "ok"
	for _, c := range checks {
		if components[c.Name].Status == "ok" {
			continue
		}
		if c.Critical {
			return "down", components
		}
		overall = "degraded"
	}
	return overall, components
}

func probe(ctx context.Context, ping func(context.Context) error) componentStatus {
	start := time.Now()
	if err := ping(ctx); err != nil {
		return componentStatus{Status: "down", Error: err.Error()}
	}
	return componentStatus{Status: "ok", Latency: time.Since(start).String()}
}
