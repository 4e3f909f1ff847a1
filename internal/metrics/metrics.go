// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Directory metrics
	IncSearch()
	ObserveSearchDuration(duration time.Duration)
	IncLawyerCacheHit()
	IncLawyerCacheMiss()

	// Catalog management metrics
	IncLawyerCreated()
	IncLawyerUpdated()
	IncLawyerDeleted()

	// Collection metrics
	IncCollectionAdd(kind string)    // kind: "shortlist" or "comparison"
	IncCollectionRemove(kind string)

	// Auth metrics
	IncRegistration()
	IncLogin(status string) // status: "success" or "failure"

	// Search-event pipeline metrics
	IncSearchEventPublished(status string) // status: "success" or "dropped"
	IncSearchEventProcessed(status string) // status: "success", "failed" or "dead_lettered"
	SetSearchQueueDepth(depth int64)

	// Webhook delivery metrics
	IncWebhookDelivery(status string) // status: "success", "failed" or "exhausted"
	SetWebhookQueueDepth(depth int64)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
