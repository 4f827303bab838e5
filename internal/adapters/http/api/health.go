package api

import (
	"net/http"

	"github.com/okian/headcount/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler answers liveness probes with the headcount registry's exposition,
// so a scrape and a probe share one endpoint.
type HealthHandler struct {
	exposition http.Handler
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		exposition: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	h.exposition.ServeHTTP(w, r)
}
