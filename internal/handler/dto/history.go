package dto

import (
	"time"

	"github.com/legalconnect/legalconnect/internal/model"
)

// SaveHistoryRequest represents the request body for logging a search.
// Absent filter fields are stored as null.
type SaveHistoryRequest struct {
	PracticeArea      *string  `json:"practiceArea"`
	State             *string  `json:"state"`
	MinExperience     *int     `json:"minExperience"`
	MaxRate           *float64 `json:"maxRate"`
	ResponseGuarantee bool     `json:"responseGuarantee"`
	ResultCount       int      `json:"resultCount"`
}

// HistoryEntryResponse represents one logged search.
type HistoryEntryResponse struct {
	ID                int64     `json:"id"`
	PracticeArea      *string   `json:"practiceArea"`
	State             *string   `json:"state"`
	MinExperience     *int      `json:"minExperience"`
	MaxRate           *float64  `json:"maxRate"`
	ResponseGuarantee bool      `json:"responseGuarantee"`
	ResultCount       int       `json:"resultCount"`
	CreatedAt         time.Time `json:"createdAt"`
}

// HistoryListResponse is the GET /history envelope.
type HistoryListResponse struct {
	History []HistoryEntryResponse `json:"history"`
}

// ToHistoryListResponse converts history records to their API shape.
func ToHistoryListResponse(records []*model.SearchHistoryRecord) *HistoryListResponse {
	entries := make([]HistoryEntryResponse, len(records))
	for i, record := range records {
		entries[i] = HistoryEntryResponse{
			ID:                record.ID,
			PracticeArea:      record.PracticeArea,
			State:             record.State,
			MinExperience:     record.MinExperience,
			MaxRate:           record.MaxRate,
			ResponseGuarantee: record.ResponseGuarantee,
			ResultCount:       record.ResultCount,
			CreatedAt:         record.CreatedAt,
		}
	}
	return &HistoryListResponse{History: entries}
}
