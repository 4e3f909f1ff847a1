package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/legalconnect/legalconnect/internal/model"
	"github.com/legalconnect/legalconnect/internal/webhook"
)

// WebhookStore is the persistence surface WebhookService needs.
type WebhookStore interface {
	CreateEndpoint(ctx context.Context, endpoint *model.WebhookEndpoint) error
	ListEndpoints(ctx context.Context) ([]*model.WebhookEndpoint, error)
	DeleteEndpoint(ctx context.Context, id string) error
}

// WebhookService manages catalog-change webhook registrations.
type WebhookService struct {
	store WebhookStore
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(store WebhookStore) *WebhookService {
	return &WebhookService{store: store}
}

// CreateWebhookInput carries a new endpoint registration.
type CreateWebhookInput struct {
	Name       string
	TargetURL  string
	EventTypes []string
}

// Register validates and stores a new endpoint. The generated signing
// secret is returned on the endpoint and shown to the caller exactly
// once.
func (s *WebhookService) Register(ctx context.Context, input CreateWebhookInput) (*model.WebhookEndpoint, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, Validation("name is required")
	}
	if err := webhook.ValidateTargetURL(input.TargetURL); err != nil {
		return nil, Validation("target url: " + err.Error())
	}
	if len(input.EventTypes) == 0 {
		return nil, Validation("at least one event type is required")
	}

	eventTypes := make([]model.EventType, 0, len(input.EventTypes))
	for _, raw := range input.EventTypes {
		et := model.EventType(raw)
		if !model.ValidEventType(et) {
			return nil, Validation("unknown event type: " + raw)
		}
		eventTypes = append(eventTypes, et)
	}

	secret, err := webhook.GenerateSecret()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	endpoint := &model.WebhookEndpoint{
		ID:         ulid.Make().String(),
		Name:       name,
		TargetURL:  input.TargetURL,
		Secret:     secret,
		Enabled:    true,
		EventTypes: eventTypes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateEndpoint(ctx, endpoint); err != nil {
		return nil, err
	}
	return endpoint, nil
}

// List returns all registered endpoints, newest first.
func (s *WebhookService) List(ctx context.Context) ([]*model.WebhookEndpoint, error) {
	return s.store.ListEndpoints(ctx)
}

// Remove soft-deletes an endpoint.
func (s *WebhookService) Remove(ctx context.Context, id string) error {
	if err := s.store.DeleteEndpoint(ctx, id); err != nil {
		if errors.Is(err, webhook.ErrEndpointNotFound) {
			return ErrWebhookNotFound
		}
		return err
	}
	return nil
}
