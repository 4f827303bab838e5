package api

import (
	"net/http"
	"time"
)

// StatsProvider reports the running service's counters for GET /stats.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves the service counters plus the time they were sampled.
type StatsHandler struct {
	provider StatsProvider
	now      func() time.Time
}

func NewStatsHandler(provider StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider, now: time.Now}
}

// HandleStats handles GET /stats. Without a provider it reports started=false.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, _ *http.Request) {
	body := map[string]interface{}{"started": false}
	if h.provider != nil {
		for k, v := range h.provider.GetStats() {
			body[k] = v
		}
	}
	body["sampled_at"] = h.now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, body)
}
