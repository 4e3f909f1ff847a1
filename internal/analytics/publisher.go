// Package analytics captures directory search events on a Redis stream
// and folds them into daily search trends.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/legalconnect/legalconnect/internal/metrics"
	"github.com/legalconnect/legalconnect/internal/model"
)

const (
	// StreamKey is the Redis stream for search events.
	StreamKey = "stream:search_events"

	// DeadLetterStreamKey is the Redis stream for poison messages.
	DeadLetterStreamKey = "stream:search_events:dlq"

	// MaxStreamLen is the approximate max length of the stream.
	MaxStreamLen = 100000

	// PublishTimeout is the max time to wait for a Redis publish.
	PublishTimeout = 100 * time.Millisecond
)

// SearchEventPayload is the compact event format on the stream.
// Absent filter fields mean the search did not apply them.
type SearchEventPayload struct {
	PracticeArea      *string  `json:"pa,omitempty"`
	State             *string  `json:"st,omitempty"`
	MinExperience     *int     `json:"mx,omitempty"`
	MaxRate           *float64 `json:"mr,omitempty"`
	ResponseGuarantee bool     `json:"rg,omitempty"`
	ResultCount       int      `json:"rc"`
	SearchedAt        int64    `json:"t"` // Unix milliseconds
}

// Publisher enqueues search events to the Redis stream.
type Publisher struct {
	redis   *redis.Client
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewPublisher creates a new search event publisher.
func NewPublisher(client *redis.Client, logger *slog.Logger, recorder metrics.Recorder) *Publisher {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Publisher{
		redis:   client,
		logger:  logger.With("component", "analytics.publisher"),
		metrics: recorder,
	}
}

// Publish adds a search event to the stream synchronously.
func (p *Publisher) Publish(ctx context.Context, event SearchEventPayload) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	result, err := p.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: MaxStreamLen,
		Approx: true,
		ID:     "*",
		Values: map[string]interface{}{
			"payload": string(data),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd: %w", err)
	}

	return result, nil
}

// PublishAsync publishes without blocking the caller.
// Errors are logged but not returned.
func (p *Publisher) PublishAsync(event SearchEventPayload) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
		defer cancel()

		streamID, err := p.Publish(ctx, event)
		if err != nil {
			p.logger.Warn("failed to publish search event", "error", err)
			p.metrics.IncSearchEventPublished("dropped")
			return
		}

		p.logger.Debug("search event published", "stream_id", streamID)
		p.metrics.IncSearchEventPublished("success")
	}()
}

// SearchPerformed records a completed directory search. It satisfies
// the directory service's event sink; a lost event only costs a trend
// increment, so delivery is fire-and-forget.
func (p *Publisher) SearchPerformed(filters model.SearchFilters, resultCount int) {
	p.PublishAsync(SearchEventPayload{
		PracticeArea:      filters.PracticeArea,
		State:             filters.State,
		MinExperience:     filters.MinExperience,
		MaxRate:           filters.MaxRate,
		ResponseGuarantee: filters.ResponseGuarantee,
		ResultCount:       resultCount,
		SearchedAt:        time.Now().UnixMilli(),
	})
}
