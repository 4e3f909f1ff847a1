package webhook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/legalconnect/legalconnect/internal/model"
)

// Repository handles webhook endpoint and delivery persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new webhook repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const endpointColumns = `id, name, target_url, secret, enabled, event_types,
	created_at, updated_at, deleted_at`

// CreateEndpoint registers a new webhook endpoint.
func (r *Repository) CreateEndpoint(ctx context.Context, endpoint *model.WebhookEndpoint) error {
	query := `
		INSERT INTO webhook_endpoints (
			id, name, target_url, secret, enabled, event_types,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	eventTypes := make([]string, len(endpoint.EventTypes))
	for i, et := range endpoint.EventTypes {
		eventTypes[i] = string(et)
	}

	_, err := r.pool.Exec(ctx, query,
		endpoint.ID,
		endpoint.Name,
		endpoint.TargetURL,
		endpoint.Secret,
		endpoint.Enabled,
		eventTypes,
		endpoint.CreatedAt,
		endpoint.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook endpoint: %w", err)
	}
	return nil
}

// GetEndpoint retrieves a webhook endpoint by ID.
func (r *Repository) GetEndpoint(ctx context.Context, id string) (*model.WebhookEndpoint, error) {
	query := `
		SELECT ` + endpointColumns + `
		FROM webhook_endpoints
		WHERE id = $1 AND deleted_at IS NULL`

	endpoint, err := scanEndpoint(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEndpointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query webhook endpoint: %w", err)
	}
	return endpoint, nil
}

// ListEndpoints retrieves all registered endpoints, newest first.
func (r *Repository) ListEndpoints(ctx context.Context) ([]*model.WebhookEndpoint, error) {
	query := `
		SELECT ` + endpointColumns + `
		FROM webhook_endpoints
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query webhook endpoints: %w", err)
	}
	defer rows.Close()

	endpoints := make([]*model.WebhookEndpoint, 0)
	for rows.Next() {
		endpoint, err := scanEndpoint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan webhook endpoint: %w", err)
		}
		endpoints = append(endpoints, endpoint)
	}
	return endpoints, rows.Err()
}

// ListActiveEndpointsByEvent retrieves enabled endpoints subscribed to
// the given event type.
func (r *Repository) ListActiveEndpointsByEvent(ctx context.Context, eventType model.EventType) ([]*model.WebhookEndpoint, error) {
	query := `
		SELECT ` + endpointColumns + `
		FROM webhook_endpoints
		WHERE deleted_at IS NULL
		  AND enabled = TRUE
		  AND $1 = ANY(event_types)
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, string(eventType))
	if err != nil {
		return nil, fmt.Errorf("query active webhook endpoints: %w", err)
	}
	defer rows.Close()

	endpoints := make([]*model.WebhookEndpoint, 0)
	for rows.Next() {
		endpoint, err := scanEndpoint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan webhook endpoint: %w", err)
		}
		endpoints = append(endpoints, endpoint)
	}
	return endpoints, rows.Err()
}

// DeleteEndpoint soft-deletes an endpoint. Pending deliveries for it
// are marked exhausted by the worker when it notices.
func (r *Repository) DeleteEndpoint(ctx context.Context, id string) error {
	query := `
		UPDATE webhook_endpoints
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete webhook endpoint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEndpointNotFound
	}
	return nil
}

func scanEndpoint(row pgx.Row) (*model.WebhookEndpoint, error) {
	var endpoint model.WebhookEndpoint
	var eventTypes []string

	err := row.Scan(
		&endpoint.ID,
		&endpoint.Name,
		&endpoint.TargetURL,
		&endpoint.Secret,
		&endpoint.Enabled,
		&eventTypes,
		&endpoint.CreatedAt,
		&endpoint.UpdatedAt,
		&endpoint.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	endpoint.EventTypes = make([]model.EventType, len(eventTypes))
	for i, et := range eventTypes {
		endpoint.EventTypes[i] = model.EventType(et)
	}
	return &endpoint, nil
}

// CreateDelivery queues a notification for one endpoint.
func (r *Repository) CreateDelivery(ctx context.Context, delivery *model.WebhookDelivery) error {
	query := `
		INSERT INTO webhook_deliveries (
			id, endpoint_id, event_type, payload_json, status,
			attempt_count, max_attempts, next_retry_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		delivery.ID,
		delivery.EndpointID,
		string(delivery.EventType),
		delivery.PayloadJSON,
		delivery.Status,
		delivery.AttemptCount,
		delivery.MaxAttempts,
		delivery.NextRetryAt,
		delivery.CreatedAt,
		delivery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook delivery: %w", err)
	}
	return nil
}

// GetPendingDeliveries returns due deliveries, oldest first.
func (r *Repository) GetPendingDeliveries(ctx context.Context, limit int) ([]*model.WebhookDelivery, error) {
	query := `
		SELECT id, endpoint_id, event_type, payload_json, status,
			   attempt_count, max_attempts, last_error, last_status,
			   next_retry_at, created_at, updated_at
		FROM webhook_deliveries
		WHERE status = $1 AND next_retry_at <= NOW()
		ORDER BY next_retry_at
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, model.DeliveryStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending deliveries: %w", err)
	}
	defer rows.Close()

	deliveries := make([]*model.WebhookDelivery, 0)
	for rows.Next() {
		var d model.WebhookDelivery
		var eventType string
		if err := rows.Scan(
			&d.ID,
			&d.EndpointID,
			&eventType,
			&d.PayloadJSON,
			&d.Status,
			&d.AttemptCount,
			&d.MaxAttempts,
			&d.LastError,
			&d.LastStatus,
			&d.NextRetryAt,
			&d.CreatedAt,
			&d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan webhook delivery: %w", err)
		}
		d.EventType = model.EventType(eventType)
		deliveries = append(deliveries, &d)
	}
	return deliveries, rows.Err()
}

// UpdateDeliverySuccess marks a delivery as delivered.
func (r *Repository) UpdateDeliverySuccess(ctx context.Context, id string, httpStatus int) error {
	query := `
		UPDATE webhook_deliveries
		SET status = $2, attempt_count = attempt_count + 1,
			last_status = $3, last_error = NULL, updated_at = NOW()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, model.DeliveryStatusSucceeded, httpStatus)
	if err != nil {
		return fmt.Errorf("update delivery success: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDeliveryNotFound
	}
	return nil
}

// UpdateDeliveryFailure records a failed attempt. Exhausted deliveries
// leave the pending queue for good.
func (r *Repository) UpdateDeliveryFailure(ctx context.Context, id string, httpStatus *int, errMsg string, nextRetryAt time.Time, exhausted bool) error {
	status := model.DeliveryStatusPending
	if exhausted {
		status = model.DeliveryStatusExhausted
	}

	query := `
		UPDATE webhook_deliveries
		SET status = $2, attempt_count = attempt_count + 1,
			last_status = $3, last_error = $4, next_retry_at = $5,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, status, httpStatus, errMsg, nextRetryAt)
	if err != nil {
		return fmt.Errorf("update delivery failure: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDeliveryNotFound
	}
	return nil
}

// GetQueueDepth counts deliveries currently due.
func (r *Repository) GetQueueDepth(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM webhook_deliveries
		WHERE status = $1 AND next_retry_at <= NOW()`

	var depth int64
	if err := r.pool.QueryRow(ctx, query, model.DeliveryStatusPending).Scan(&depth); err != nil {
		return 0, fmt.Errorf("count pending deliveries: %w", err)
	}
	return depth, nil
}
