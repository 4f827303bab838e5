package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/headcount/pkg/metrics"
)

// instrument records request count, latency and failures for route.
func instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		began := time.Now()
		next(rec, r)

		code := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(route, r.Method, code)
		metrics.RecordHTTPRequestDuration(route, r.Method, code, float64(time.Since(began).Microseconds())/1000)
		if class := failureClass(rec.status); class != "" {
			metrics.RecordErrorByComponent("http", class)
		}
	}
}

// failureClass maps an error status onto the analytics error taxonomy; it
// returns "" for successful responses.
func failureClass(status int) string {
	switch {
	case status < http.StatusBadRequest:
		return ""
	case status == http.StatusNotFound:
		return "unknown_district"
	case status == http.StatusUnprocessableEntity:
		return "unknown_data"
	case status >= http.StatusInternalServerError:
		return "internal"
	default:
		return "bad_request"
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(status int) {
	if !s.wroteHeader {
		s.status = status
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(status)
}
