package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Searches              uint64
	SearchDurationCount   uint64
	SearchDurationTotalNs int64
	LawyerCacheHits       uint64
	LawyerCacheMisses     uint64
	LawyersCreated        uint64
	LawyersUpdated        uint64
	LawyersDeleted        uint64
	ShortlistAdds         uint64
	ShortlistRemoves      uint64
	ComparisonAdds        uint64
	ComparisonRemoves     uint64
	Registrations         uint64
	LoginSuccesses        uint64
	LoginFailures         uint64
	SearchEventsPublished uint64
	SearchEventsDropped   uint64
	SearchEventsProcessed uint64
	SearchEventsFailed    uint64
	SearchEventsDead      uint64
	SearchQueueDepth      int64
	WebhookSuccesses      uint64
	WebhookFailures       uint64
	WebhookExhausted      uint64
	WebhookQueueDepth     int64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	searches              uint64
	searchDurationCount   uint64
	searchDurationTotalNs int64
	lawyerCacheHits       uint64
	lawyerCacheMisses     uint64
	lawyersCreated        uint64
	lawyersUpdated        uint64
	lawyersDeleted        uint64
	shortlistAdds         uint64
	shortlistRemoves      uint64
	comparisonAdds        uint64
	comparisonRemoves     uint64
	registrations         uint64
	loginSuccesses        uint64
	loginFailures         uint64
	searchEventsPublished uint64
	searchEventsDropped   uint64
	searchEventsProcessed uint64
	searchEventsFailed    uint64
	searchEventsDead      uint64
	searchQueueDepth      int64
	webhookSuccesses      uint64
	webhookFailures       uint64
	webhookExhausted      uint64
	webhookQueueDepth     int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Searches:              atomic.LoadUint64(&m.searches),
		SearchDurationCount:   atomic.LoadUint64(&m.searchDurationCount),
		SearchDurationTotalNs: atomic.LoadInt64(&m.searchDurationTotalNs),
		LawyerCacheHits:       atomic.LoadUint64(&m.lawyerCacheHits),
		LawyerCacheMisses:     atomic.LoadUint64(&m.lawyerCacheMisses),
		LawyersCreated:        atomic.LoadUint64(&m.lawyersCreated),
		LawyersUpdated:        atomic.LoadUint64(&m.lawyersUpdated),
		LawyersDeleted:        atomic.LoadUint64(&m.lawyersDeleted),
		ShortlistAdds:         atomic.LoadUint64(&m.shortlistAdds),
		ShortlistRemoves:      atomic.LoadUint64(&m.shortlistRemoves),
		ComparisonAdds:        atomic.LoadUint64(&m.comparisonAdds),
		ComparisonRemoves:     atomic.LoadUint64(&m.comparisonRemoves),
		Registrations:         atomic.LoadUint64(&m.registrations),
		LoginSuccesses:        atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:         atomic.LoadUint64(&m.loginFailures),
		SearchEventsPublished: atomic.LoadUint64(&m.searchEventsPublished),
		SearchEventsDropped:   atomic.LoadUint64(&m.searchEventsDropped),
		SearchEventsProcessed: atomic.LoadUint64(&m.searchEventsProcessed),
		SearchEventsFailed:    atomic.LoadUint64(&m.searchEventsFailed),
		SearchEventsDead:      atomic.LoadUint64(&m.searchEventsDead),
		SearchQueueDepth:      atomic.LoadInt64(&m.searchQueueDepth),
		WebhookSuccesses:      atomic.LoadUint64(&m.webhookSuccesses),
		WebhookFailures:       atomic.LoadUint64(&m.webhookFailures),
		WebhookExhausted:      atomic.LoadUint64(&m.webhookExhausted),
		WebhookQueueDepth:     atomic.LoadInt64(&m.webhookQueueDepth),
	}
}

// IncSearch increments the search counter.
func (m *InMemoryRecorder) IncSearch() {
	atomic.AddUint64(&m.searches, 1)
}

// ObserveSearchDuration records a directory query duration.
func (m *InMemoryRecorder) ObserveSearchDuration(duration time.Duration) {
	atomic.AddUint64(&m.searchDurationCount, 1)
	atomic.AddInt64(&m.searchDurationTotalNs, duration.Nanoseconds())
}

// IncLawyerCacheHit increments the profile cache hit counter.
func (m *InMemoryRecorder) IncLawyerCacheHit() {
	atomic.AddUint64(&m.lawyerCacheHits, 1)
}

// IncLawyerCacheMiss increments the profile cache miss counter.
func (m *InMemoryRecorder) IncLawyerCacheMiss() {
	atomic.AddUint64(&m.lawyerCacheMisses, 1)
}

// IncLawyerCreated increments the catalog create counter.
func (m *InMemoryRecorder) IncLawyerCreated() {
	atomic.AddUint64(&m.lawyersCreated, 1)
}

// IncLawyerUpdated increments the catalog update counter.
func (m *InMemoryRecorder) IncLawyerUpdated() {
	atomic.AddUint64(&m.lawyersUpdated, 1)
}

// IncLawyerDeleted increments the catalog delete counter.
func (m *InMemoryRecorder) IncLawyerDeleted() {
	atomic.AddUint64(&m.lawyersDeleted, 1)
}

// IncCollectionAdd increments the add counter for a collection kind.
func (m *InMemoryRecorder) IncCollectionAdd(kind string) {
	if kind == "comparison" {
		atomic.AddUint64(&m.comparisonAdds, 1)
		return
	}
	atomic.AddUint64(&m.shortlistAdds, 1)
}

// IncCollectionRemove increments the remove counter for a collection kind.
func (m *InMemoryRecorder) IncCollectionRemove(kind string) {
	if kind == "comparison" {
		atomic.AddUint64(&m.comparisonRemoves, 1)
		return
	}
	atomic.AddUint64(&m.shortlistRemoves, 1)
}

// IncRegistration increments the registration counter.
func (m *InMemoryRecorder) IncRegistration() {
	atomic.AddUint64(&m.registrations, 1)
}

// IncLogin increments the login counter for the given outcome.
func (m *InMemoryRecorder) IncLogin(status string) {
	if status == "success" {
		atomic.AddUint64(&m.loginSuccesses, 1)
		return
	}
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncSearchEventPublished counts a stream publish attempt outcome.
func (m *InMemoryRecorder) IncSearchEventPublished(status string) {
	if status == "success" {
		atomic.AddUint64(&m.searchEventsPublished, 1)
		return
	}
	atomic.AddUint64(&m.searchEventsDropped, 1)
}

// IncSearchEventProcessed counts a consumed event outcome.
func (m *InMemoryRecorder) IncSearchEventProcessed(status string) {
	switch status {
	case "success":
		atomic.AddUint64(&m.searchEventsProcessed, 1)
	case "dead_lettered":
		atomic.AddUint64(&m.searchEventsDead, 1)
	default:
		atomic.AddUint64(&m.searchEventsFailed, 1)
	}
}

// SetSearchQueueDepth records the current stream backlog.
func (m *InMemoryRecorder) SetSearchQueueDepth(depth int64) {
	atomic.StoreInt64(&m.searchQueueDepth, depth)
}

// IncWebhookDelivery counts a delivery attempt outcome.
func (m *InMemoryRecorder) IncWebhookDelivery(status string) {
	switch status {
	case "success":
		atomic.AddUint64(&m.webhookSuccesses, 1)
	case "exhausted":
		atomic.AddUint64(&m.webhookExhausted, 1)
	default:
		atomic.AddUint64(&m.webhookFailures, 1)
	}
}

// SetWebhookQueueDepth records the count of due pending deliveries.
func (m *InMemoryRecorder) SetWebhookQueueDepth(depth int64) {
	atomic.StoreInt64(&m.webhookQueueDepth, depth)
}
