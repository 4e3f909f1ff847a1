package handler

import (
	"fmt"
	"net/http"

	"github.com/legalconnect/legalconnect/internal/metrics"
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
// GET /metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "legalconnect_searches_total %d\n", snap.Searches)
	writeMetric(w, "legalconnect_search_duration_seconds_count %d\n", snap.SearchDurationCount)
	writeMetric(w, "legalconnect_search_duration_seconds_sum %.6f\n", float64(snap.SearchDurationTotalNs)/1e9)

	writeMetric(w, "legalconnect_lawyer_cache_hits_total %d\n", snap.LawyerCacheHits)
	writeMetric(w, "legalconnect_lawyer_cache_misses_total %d\n", snap.LawyerCacheMisses)

	writeMetric(w, "legalconnect_lawyers_created_total %d\n", snap.LawyersCreated)
	writeMetric(w, "legalconnect_lawyers_updated_total %d\n", snap.LawyersUpdated)
	writeMetric(w, "legalconnect_lawyers_deleted_total %d\n", snap.LawyersDeleted)

	writeMetric(w, "legalconnect_collection_adds_total{kind=\"shortlist\"} %d\n", snap.ShortlistAdds)
	writeMetric(w, "legalconnect_collection_adds_total{kind=\"comparison\"} %d\n", snap.ComparisonAdds)
	writeMetric(w, "legalconnect_collection_removes_total{kind=\"shortlist\"} %d\n", snap.ShortlistRemoves)
	writeMetric(w, "legalconnect_collection_removes_total{kind=\"comparison\"} %d\n", snap.ComparisonRemoves)

	writeMetric(w, "legalconnect_registrations_total %d\n", snap.Registrations)
	writeMetric(w, "legalconnect_logins_total{status=\"success\"} %d\n", snap.LoginSuccesses)
	writeMetric(w, "legalconnect_logins_total{status=\"failure\"} %d\n", snap.LoginFailures)

	writeMetric(w, "legalconnect_search_events_published_total{status=\"success\"} %d\n", snap.SearchEventsPublished)
	writeMetric(w, "legalconnect_search_events_published_total{status=\"dropped\"} %d\n", snap.SearchEventsDropped)
	writeMetric(w, "legalconnect_search_events_processed_total{status=\"success\"} %d\n", snap.SearchEventsProcessed)
	writeMetric(w, "legalconnect_search_events_processed_total{status=\"failed\"} %d\n", snap.SearchEventsFailed)
	writeMetric(w, "legalconnect_search_events_processed_total{status=\"dead_lettered\"} %d\n", snap.SearchEventsDead)
	writeMetric(w, "legalconnect_search_event_queue_depth %d\n", snap.SearchQueueDepth)

	writeMetric(w, "legalconnect_webhook_deliveries_total{status=\"success\"} %d\n", snap.WebhookSuccesses)
	writeMetric(w, "legalconnect_webhook_deliveries_total{status=\"failed\"} %d\n", snap.WebhookFailures)
	writeMetric(w, "legalconnect_webhook_deliveries_total{status=\"exhausted\"} %d\n", snap.WebhookExhausted)
	writeMetric(w, "legalconnect_webhook_queue_depth %d\n", snap.WebhookQueueDepth)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
