package service

import (
	"context"
	"fmt"

	"github.com/legalconnect/legalconnect/internal/model"
)

// HistoryStore is the persistence surface HistoryService needs.
type HistoryStore interface {
	CreateSearchHistory(ctx context.Context, record *model.SearchHistoryRecord) error
	ListSearchHistory(ctx context.Context, userID int64) ([]*model.SearchHistoryRecord, error)
}

// HistoryService handles the per-user search history log.
// Records are append-only; reads return the newest
// model.HistoryReadLimit entries.
type HistoryService struct {
	store HistoryStore
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(store HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// RecordInput defines input for logging a search. All filter fields are
// optional; absent fields are stored as null.
type RecordInput struct {
	UserID            int64
	PracticeArea      *string
	State             *string
	MinExperience     *int
	MaxRate           *float64
	ResponseGuarantee bool
	ResultCount       int
}

// Record appends a search to the user's history.
func (s *HistoryService) Record(ctx context.Context, input RecordInput) (*model.SearchHistoryRecord, error) {
	if input.ResultCount < 0 {
		return nil, Validation("result count cannot be negative")
	}

	record := &model.SearchHistoryRecord{
		UserID:            input.UserID,
		PracticeArea:      input.PracticeArea,
		State:             input.State,
		MinExperience:     input.MinExperience,
		MaxRate:           input.MaxRate,
		ResponseGuarantee: input.ResponseGuarantee,
		ResultCount:       input.ResultCount,
	}

	if err := s.store.CreateSearchHistory(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record search: %w", err)
	}

	return record, nil
}

// List returns the user's recent searches, newest first.
func (s *HistoryService) List(ctx context.Context, userID int64) ([]*model.SearchHistoryRecord, error) {
	records, err := s.store.ListSearchHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list search history: %w", err)
	}
	return records, nil
}
