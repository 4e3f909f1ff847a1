package metrics

import "time"

// NoopRecorder discards all metric events.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (NoopRecorder) IncSearch()                                    {}
func (NoopRecorder) ObserveSearchDuration(duration time.Duration)  {}
func (NoopRecorder) IncLawyerCacheHit()                            {}
func (NoopRecorder) IncLawyerCacheMiss()                           {}
func (NoopRecorder) IncLawyerCreated()                             {}
func (NoopRecorder) IncLawyerUpdated()                             {}
func (NoopRecorder) IncLawyerDeleted()                             {}
func (NoopRecorder) IncCollectionAdd(kind string)                  {}
func (NoopRecorder) IncCollectionRemove(kind string)               {}
func (NoopRecorder) IncRegistration()                              {}
func (NoopRecorder) IncLogin(status string)                        {}
func (NoopRecorder) IncSearchEventPublished(status string)         {}
func (NoopRecorder) IncSearchEventProcessed(status string)         {}
func (NoopRecorder) SetSearchQueueDepth(depth int64)               {}
func (NoopRecorder) IncWebhookDelivery(status string)              {}
func (NoopRecorder) SetWebhookQueueDepth(depth int64)              {}
