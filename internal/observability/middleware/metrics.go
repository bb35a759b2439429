package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"keyshare/internal/observability/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// WithMetrics records request counts and durations in m and writes an access
// log line to log at DEBUG. /metrics itself is not measured.
func WithMetrics(m *metrics.HTTP, log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sr, r)

		duration := time.Since(start).Seconds()
		path := r.URL.Path
		method := r.Method
		statusStr := strconv.Itoa(sr.status)

		m.RequestsTotal.WithLabelValues(method, path, statusStr).Inc()
		m.RequestDurationSeconds.WithLabelValues(method, path).Observe(duration)

		log.Debug("request",
			"method", method,
			"path", path,
			"remote", r.RemoteAddr,
			"status", sr.status,
			"bytes", sr.bytes,
			"duration_seconds", duration,
		)
	})
}
