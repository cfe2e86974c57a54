package httpadapter

import (
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/kirillkom/docinsight/internal/observability/metrics"
)

// rateLimitMiddleware applies a process-wide token bucket. Health and
// metrics scrapes are never throttled.
func rateLimitMiddleware(next http.Handler, rps, burst int, m *metrics.HTTPServerMetrics) http.Handler {
	if burst <= 0 {
		burst = rps
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		if !limiter.Allow() {
			if m != nil {
				m.RecordRateLimited(serviceName, r.URL.Path)
			}
			retryAfter := int(time.Second / time.Duration(max(rps, 1)))
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// backpressureMiddleware bounds in-flight requests. A request waits up to
// admissionWait for a slot before it is shed with 503.
func backpressureMiddleware(next http.Handler, maxConcurrent int, admissionWait time.Duration, m *metrics.HTTPServerMetrics) http.Handler {
	slots := make(chan struct{}, maxConcurrent)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		timer := time.NewTimer(admissionWait)
		defer timer.Stop()

		select {
		case slots <- struct{}{}:
			defer func() { <-slots }()
			next.ServeHTTP(w, r)
		case <-timer.C:
			if m != nil {
				m.RecordBackpressureRejected(serviceName, r.URL.Path)
			}
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "server overloaded, try again later"})
		case <-r.Context().Done():
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "request canceled before admission"})
		}
	})
}
