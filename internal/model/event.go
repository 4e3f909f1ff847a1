package model

import "time"

// EventType identifies a webhook-deliverable event.
type EventType string

const (
	EventLawyerCreated EventType = "lawyer.created"
	EventLawyerUpdated EventType = "lawyer.updated"
	EventLawyerDeleted EventType = "lawyer.deleted"
)

// ValidEventType reports whether the given type is deliverable.
func ValidEventType(t EventType) bool {
	switch t {
	case EventLawyerCreated, EventLawyerUpdated, EventLawyerDeleted:
		return true
	}
	return false
}

// SearchEvent is a persisted record of a directory search, consumed
// from the search-event stream. EventID carries the Redis stream ID
// and acts as the idempotency key.
type SearchEvent struct {
	ID                string
	EventID           string
	PracticeArea      *string
	State             *string
	MinExperience     *int
	MaxRate           *float64
	ResponseGuarantee bool
	ResultCount       int
	SearchedAt        time.Time
}

// SearchTrend is a daily aggregate of searches per practice area and
// state. Empty dimension values mean the filter was not applied.
type SearchTrend struct {
	Day          time.Time `json:"day"`
	PracticeArea string    `json:"practiceArea"`
	State        string    `json:"state"`
	Searches     int64     `json:"searches"`
}

// WebhookEndpoint is an admin-registered HTTPS target notified of
// catalog changes. Secret is the signing key, shown once at creation.
type WebhookEndpoint struct {
	ID         string
	Name       string
	TargetURL  string
	Secret     string
	Enabled    bool
	EventTypes []EventType
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// IsActive reports whether the endpoint should receive deliveries.
func (e *WebhookEndpoint) IsActive() bool {
	return e.Enabled && e.DeletedAt == nil
}

// SubscribesTo reports whether the endpoint wants the given event.
func (e *WebhookEndpoint) SubscribesTo(t EventType) bool {
	for _, et := range e.EventTypes {
		if et == t {
			return true
		}
	}
	return false
}

// Webhook delivery lifecycle states.
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusSucceeded = "succeeded"
	DeliveryStatusExhausted = "exhausted"
)

// WebhookDelivery is one queued notification for one endpoint.
// A delivery stays pending across failed attempts until it succeeds
// or its attempts are exhausted.
type WebhookDelivery struct {
	ID           string
	EndpointID   string
	EventType    EventType
	PayloadJSON  string
	Status       string
	AttemptCount int
	MaxAttempts  int
	LastError    *string
	LastStatus   *int
	NextRetryAt  time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WebhookPayload is the JSON body delivered to endpoints.
type WebhookPayload struct {
	EventType string         `json:"eventType"`
	EventID   string         `json:"eventId"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}
