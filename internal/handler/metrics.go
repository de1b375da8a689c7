package handler

import (
	"fmt"
	"net/http"

	"github.com/layerkit/layerkit/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "# TYPE layerkit_users_persisted_total counter\n")
	writeMetric(w, "layerkit_users_persisted_total{result=\"created\"} %d\n", snap.UsersCreated)
	writeMetric(w, "layerkit_users_persisted_total{result=\"updated\"} %d\n", snap.UsersUpdated)

	writeMetric(w, "# TYPE layerkit_user_lookups_total counter\n")
	writeMetric(w, "layerkit_user_lookups_total %d\n", snap.UserLookups)

	writeMetric(w, "# TYPE layerkit_user_cache_requests_total counter\n")
	writeMetric(w, "layerkit_user_cache_requests_total{result=\"hit\"} %d\n", snap.UserCacheHits)
	writeMetric(w, "layerkit_user_cache_requests_total{result=\"miss\"} %d\n", snap.UserCacheMisses)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
