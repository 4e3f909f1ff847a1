package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/legalconnect/legalconnect/internal/metrics"
	"github.com/legalconnect/legalconnect/internal/model"
	"github.com/legalconnect/legalconnect/internal/repository"
)

// CollectionStore is the persistence surface CollectionService needs.
type CollectionStore interface {
	ListCollection(ctx context.Context, kind repository.CollectionKind, userID int64) ([]*model.Lawyer, error)
	AddCollectionEntry(ctx context.Context, kind repository.CollectionKind, userID, lawyerID int64) error
	RemoveCollectionEntry(ctx context.Context, kind repository.CollectionKind, userID, lawyerID int64) error
	ClearCollection(ctx context.Context, kind repository.CollectionKind, userID int64) error
}

// CollectionService handles per-user shortlists and comparison sets.
// The shortlist is unbounded; the comparison set holds at most
// model.ComparisonLimit lawyers, enforced atomically at the store.
type CollectionService struct {
	store   CollectionStore
	metrics metrics.Recorder
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(store CollectionStore, recorder metrics.Recorder) *CollectionService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CollectionService{
		store:   store,
		metrics: recorder,
	}
}

// ListShortlist returns the user's saved lawyers, newest-added first.
func (s *CollectionService) ListShortlist(ctx context.Context, userID int64) ([]*model.Lawyer, error) {
	return s.list(ctx, repository.CollectionShortlist, userID)
}

// AddToShortlist saves a lawyer for later.
func (s *CollectionService) AddToShortlist(ctx context.Context, userID, lawyerID int64) error {
	return s.add(ctx, repository.CollectionShortlist, userID, lawyerID)
}

// RemoveFromShortlist drops a saved lawyer.
func (s *CollectionService) RemoveFromShortlist(ctx context.Context, userID, lawyerID int64) error {
	return s.remove(ctx, repository.CollectionShortlist, userID, lawyerID)
}

// ListComparison returns the user's comparison set, newest-added first,
// at most model.ComparisonLimit entries.
func (s *CollectionService) ListComparison(ctx context.Context, userID int64) ([]*model.Lawyer, error) {
	return s.list(ctx, repository.CollectionComparison, userID)
}

// AddToComparison adds a lawyer to the comparison set. Returns
// ErrComparisonFull when the set already holds the maximum; the
// capacity check takes precedence over the duplicate check.
func (s *CollectionService) AddToComparison(ctx context.Context, userID, lawyerID int64) error {
	return s.add(ctx, repository.CollectionComparison, userID, lawyerID)
}

// RemoveFromComparison drops a lawyer from the comparison set.
func (s *CollectionService) RemoveFromComparison(ctx context.Context, userID, lawyerID int64) error {
	return s.remove(ctx, repository.CollectionComparison, userID, lawyerID)
}

// ClearComparison empties the comparison set. Idempotent.
func (s *CollectionService) ClearComparison(ctx context.Context, userID int64) error {
	if err := s.store.ClearCollection(ctx, repository.CollectionComparison, userID); err != nil {
		return fmt.Errorf("failed to clear comparison: %w", err)
	}
	return nil
}

func (s *CollectionService) list(ctx context.Context, kind repository.CollectionKind, userID int64) ([]*model.Lawyer, error) {
	lawyers, err := s.store.ListCollection(ctx, kind, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return lawyers, nil
}

func (s *CollectionService) add(ctx context.Context, kind repository.CollectionKind, userID, lawyerID int64) error {
	if err := s.store.AddCollectionEntry(ctx, kind, userID, lawyerID); err != nil {
		switch {
		case errors.Is(err, repository.ErrCollectionFull):
			return ErrComparisonFull
		case errors.Is(err, repository.ErrAlreadyInCollection):
			return ErrAlreadyAdded
		case errors.Is(err, repository.ErrLawyerNotFound):
			return ErrLawyerNotFound
		}
		return fmt.Errorf("failed to add to %s: %w", kind, err)
	}
	s.metrics.IncCollectionAdd(string(kind))
	return nil
}

func (s *CollectionService) remove(ctx context.Context, kind repository.CollectionKind, userID, lawyerID int64) error {
	if err := s.store.RemoveCollectionEntry(ctx, kind, userID, lawyerID); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("failed to remove from %s: %w", kind, err)
	}
	s.metrics.IncCollectionRemove(string(kind))
	return nil
}
