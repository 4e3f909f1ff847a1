package repository

import (
	"context"
	"fmt"

	"github.com/legalconnect/legalconnect/internal/model"
)

// CreateSearchHistory appends a search record. Append-only: records are
// never updated or deleted in application code.
func (r *Repository) CreateSearchHistory(ctx context.Context, record *model.SearchHistoryRecord) error {
	query := `
		INSERT INTO search_history
			(user_id, practice_area, state, min_experience, max_rate, response_guarantee, result_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		record.UserID,
		record.PracticeArea,
		record.State,
		record.MinExperience,
		record.MaxRate,
		record.ResponseGuarantee,
		record.ResultCount,
	).Scan(&record.ID, &record.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create search history: %w", err)
	}

	return nil
}

// ListSearchHistory returns a user's most recent search records,
// newest first, capped at model.HistoryReadLimit.
func (r *Repository) ListSearchHistory(ctx context.Context, userID int64) ([]*model.SearchHistoryRecord, error) {
	query := `
		SELECT id, user_id, practice_area, state, min_experience, max_rate,
		       response_guarantee, result_count, created_at
		FROM search_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, model.HistoryReadLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list search history: %w", err)
	}
	defer rows.Close()

	records := []*model.SearchHistoryRecord{}
	for rows.Next() {
		var record model.SearchHistoryRecord
		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.PracticeArea,
			&record.State,
			&record.MinExperience,
			&record.MaxRate,
			&record.ResponseGuarantee,
			&record.ResultCount,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search history: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search history: %w", err)
	}

	return records, nil
}
