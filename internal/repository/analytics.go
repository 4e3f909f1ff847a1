package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/legalconnect/legalconnect/internal/model"
)

// BulkInsertSearchEvents inserts a batch of search events. Events whose
// stream ID was already persisted are skipped, so redelivered batches
// stay idempotent.
func (r *Repository) BulkInsertSearchEvents(ctx context.Context, events []*model.SearchEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO search_events (
			id, event_id, practice_area, state, min_experience,
			max_rate, response_guarantee, result_count, searched_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (event_id) DO NOTHING`

	for _, event := range events {
		batch.Queue(query,
			event.ID,
			event.EventID,
			event.PracticeArea,
			event.State,
			event.MinExperience,
			event.MaxRate,
			event.ResponseGuarantee,
			event.ResultCount,
			event.SearchedAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range events {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert search event: %w", err)
		}
	}
	return nil
}

// UpdateSearchTrends folds a batch of events into the daily trend
// aggregates. Dimensions the search did not filter on are stored as
// empty strings so the primary key stays total.
func (r *Repository) UpdateSearchTrends(ctx context.Context, events []*model.SearchEvent) error {
	if len(events) == 0 {
		return nil
	}

	type bucket struct {
		day          time.Time
		practiceArea string
		state        string
		count        int64
	}

	buckets := make(map[string]*bucket)
	for _, event := range events {
		day := event.SearchedAt.UTC().Truncate(24 * time.Hour)
		practiceArea := ""
		if event.PracticeArea != nil {
			practiceArea = *event.PracticeArea
		}
		state := ""
		if event.State != nil {
			state = *event.State
		}

		key := day.Format("2006-01-02") + "|" + practiceArea + "|" + state
		if b, ok := buckets[key]; ok {
			b.count++
			continue
		}
		buckets[key] = &bucket{day: day, practiceArea: practiceArea, state: state, count: 1}
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO search_trends (day, practice_area, state, searches)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (day, practice_area, state)
		DO UPDATE SET searches = search_trends.searches + EXCLUDED.searches`

	for _, b := range buckets {
		batch.Queue(query, b.day, b.practiceArea, b.state, b.count)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range buckets {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("update search trend: %w", err)
		}
	}
	return nil
}

// TopSearchTrends returns the busiest trend buckets over the trailing
// window, most searched first.
func (r *Repository) TopSearchTrends(ctx context.Context, since time.Time, limit int) ([]*model.SearchTrend, error) {
	query := `
		SELECT day, practice_area, state, searches
		FROM search_trends
		WHERE day >= $1
		ORDER BY searches DESC, day DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query search trends: %w", err)
	}
	defer rows.Close()

	trends := make([]*model.SearchTrend, 0)
	for rows.Next() {
		var trend model.SearchTrend
		if err := rows.Scan(&trend.Day, &trend.PracticeArea, &trend.State, &trend.Searches); err != nil {
			return nil, fmt.Errorf("scan search trend: %w", err)
		}
		trends = append(trends, &trend)
	}
	return trends, rows.Err()
}
