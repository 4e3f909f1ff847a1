// Package model defines domain entities for the application.
package model

import "time"

// SearchFilters captures the optional predicates of a directory query.
// Nil fields impose no constraint.
type SearchFilters struct {
	PracticeArea      *string
	State             *string
	MinExperience     *int
	MaxRate           *float64
	ResponseGuarantee bool
}

// SearchHistoryRecord is an append-only log entry of a past search
// and the number of results it produced. Immutable once written.
type SearchHistoryRecord struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	PracticeArea      *string   `json:"practice_area"`
	State             *string   `json:"state"`
	MinExperience     *int      `json:"min_experience"`
	MaxRate           *float64  `json:"max_rate"`
	ResponseGuarantee bool      `json:"response_guarantee"`
	ResultCount       int       `json:"result_count"`
	CreatedAt         time.Time `json:"created_at"`
}
