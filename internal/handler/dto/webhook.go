package dto

import (
	"time"

	"github.com/legalconnect/legalconnect/internal/model"
)

// CreateWebhookRequest registers a catalog-change endpoint.
type CreateWebhookRequest struct {
	Name       string   `json:"name"`
	TargetURL  string   `json:"targetUrl"`
	EventTypes []string `json:"eventTypes"`
}

// WebhookResponse describes a registered endpoint. The signing secret
// is never included here.
type WebhookResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	TargetURL  string    `json:"targetUrl"`
	Enabled    bool      `json:"enabled"`
	EventTypes []string  `json:"eventTypes"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateWebhookResponse carries the one-time secret alongside the
// registered endpoint.
type CreateWebhookResponse struct {
	Message string          `json:"message"`
	Webhook WebhookResponse `json:"webhook"`
	Secret  string          `json:"secret"`
}

// WebhookListResponse wraps the endpoint collection.
type WebhookListResponse struct {
	Webhooks []WebhookResponse `json:"webhooks"`
}

// ToWebhookResponse converts a model endpoint to its API shape.
func ToWebhookResponse(endpoint *model.WebhookEndpoint) WebhookResponse {
	eventTypes := make([]string, len(endpoint.EventTypes))
	for i, et := range endpoint.EventTypes {
		eventTypes[i] = string(et)
	}
	return WebhookResponse{
		ID:         endpoint.ID,
		Name:       endpoint.Name,
		TargetURL:  endpoint.TargetURL,
		Enabled:    endpoint.Enabled,
		EventTypes: eventTypes,
		CreatedAt:  endpoint.CreatedAt,
	}
}

// ToWebhookListResponse converts endpoints to the list envelope.
func ToWebhookListResponse(endpoints []*model.WebhookEndpoint) WebhookListResponse {
	out := make([]WebhookResponse, len(endpoints))
	for i, endpoint := range endpoints {
		out[i] = ToWebhookResponse(endpoint)
	}
	return WebhookListResponse{Webhooks: out}
}

// TrendResponse is one aggregated search bucket.
type TrendResponse struct {
	Day          string `json:"day"`
	PracticeArea string `json:"practiceArea"`
	State        string `json:"state"`
	Searches     int64  `json:"searches"`
}

// TrendListResponse wraps the trend collection.
type TrendListResponse struct {
	Trends []TrendResponse `json:"trends"`
}

// ToTrendListResponse converts trends to the list envelope.
func ToTrendListResponse(trends []*model.SearchTrend) TrendListResponse {
	out := make([]TrendResponse, len(trends))
	for i, trend := range trends {
		out[i] = TrendResponse{
			Day:          trend.Day.Format("2006-01-02"),
			PracticeArea: trend.PracticeArea,
			State:        trend.State,
			Searches:     trend.Searches,
		}
	}
	return TrendListResponse{Trends: out}
}
