package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/legalconnect/legalconnect/internal/cache"
	"github.com/legalconnect/legalconnect/internal/metrics"
	"github.com/legalconnect/legalconnect/internal/model"
	"github.com/legalconnect/legalconnect/internal/repository"
)

// LawyerStore is the persistence surface DirectoryService needs.
type LawyerStore interface {
	ListLawyers(ctx context.Context, filters model.SearchFilters, sortKey string) ([]*model.Lawyer, error)
	GetLawyer(ctx context.Context, id int64) (*model.Lawyer, error)
	CreateLawyer(ctx context.Context, lawyer *model.Lawyer) error
	UpdateLawyer(ctx context.Context, id int64, patch *repository.LawyerPatch) error
	DeleteLawyer(ctx context.Context, id int64) error
}

// ProfileCache is the read-through cache surface for lawyer profiles.
// Implemented by cache.Cache.
type ProfileCache interface {
	GetLawyer(ctx context.Context, id int64) (*model.Lawyer, error)
	SetLawyer(ctx context.Context, lawyer *model.Lawyer, ttl time.Duration) error
	InvalidateLawyer(ctx context.Context, id int64) error
}

// SearchEventSink receives completed searches for trend analytics.
// Implemented by analytics.Publisher.
type SearchEventSink interface {
	SearchPerformed(filters model.SearchFilters, resultCount int)
}

// CatalogEventSink receives catalog changes for webhook fan-out.
// Implemented by webhook.Publisher.
type CatalogEventSink interface {
	LawyerChanged(ctx context.Context, eventType model.EventType, lawyer *model.Lawyer) error
}

// DirectoryService handles the lawyer catalog and directory queries.
type DirectoryService struct {
	store         LawyerStore
	cache         ProfileCache
	cacheTTL      time.Duration
	metrics       metrics.Recorder
	logger        *slog.Logger
	searchEvents  SearchEventSink
	catalogEvents CatalogEventSink
}

// NewDirectoryService creates a new DirectoryService. cache may be nil,
// in which case profile reads always hit the store.
func NewDirectoryService(store LawyerStore, profileCache ProfileCache, cacheTTL time.Duration, recorder metrics.Recorder, logger *slog.Logger) *DirectoryService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cacheTTL <= 0 {
		cacheTTL = cache.DefaultLawyerTTL
	}
	return &DirectoryService{
		store:    store,
		cache:    profileCache,
		cacheTTL: cacheTTL,
		metrics:  recorder,
		logger:   logger,
	}
}

// SetSearchEventSink enables search trend capture. Nil disables it.
func (s *DirectoryService) SetSearchEventSink(sink SearchEventSink) {
	s.searchEvents = sink
}

// SetCatalogEventSink enables catalog change notifications. Nil
// disables them.
func (s *DirectoryService) SetCatalogEventSink(sink CatalogEventSink) {
	s.catalogEvents = sink
}

// Search runs a directory query. All filter predicates are optional and
// AND-combined; unknown sort keys fall back to newest-first.
func (s *DirectoryService) Search(ctx context.Context, filters model.SearchFilters, sortKey string) ([]*model.Lawyer, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveSearchDuration(time.Since(start))
	}()
	s.metrics.IncSearch()

	lawyers, err := s.store.ListLawyers(ctx, filters, sortKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list lawyers: %w", err)
	}

	if s.searchEvents != nil {
		s.searchEvents.SearchPerformed(filters, len(lawyers))
	}
	return lawyers, nil
}

// GetLawyer retrieves a single profile, cache-first.
func (s *DirectoryService) GetLawyer(ctx context.Context, id int64) (*model.Lawyer, error) {
	if s.cache != nil {
		cached, err := s.cache.GetLawyer(ctx, id)
		if err == nil {
			s.metrics.IncLawyerCacheHit()
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("lawyer cache read failed", "lawyer_id", id, "error", err)
		}
		s.metrics.IncLawyerCacheMiss()
	}

	lawyer, err := s.store.GetLawyer(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLawyerNotFound) {
			return nil, ErrLawyerNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetLawyer(ctx, lawyer, s.cacheTTL); err != nil {
			s.logger.Warn("lawyer cache write failed", "lawyer_id", id, "error", err)
		}
	}

	return lawyer, nil
}

// CreateLawyer adds a profile to the catalog. Admin only; the role check
// happens at the middleware boundary.
func (s *DirectoryService) CreateLawyer(ctx context.Context, lawyer *model.Lawyer) (*model.Lawyer, error) {
	if err := validateLawyer(lawyer); err != nil {
		return nil, err
	}
	if lawyer.Tier == "" {
		lawyer.Tier = model.TierMid
	}

	if err := s.store.CreateLawyer(ctx, lawyer); err != nil {
		if errors.Is(err, repository.ErrFieldOutOfRange) {
			return nil, Validation("field value out of range")
		}
		return nil, fmt.Errorf("failed to create lawyer: %w", err)
	}

	s.metrics.IncLawyerCreated()

	s.emitCatalogEvent(ctx, model.EventLawyerCreated, lawyer)

	return lawyer, nil
}

// UpdateLawyer applies a partial patch to a profile and invalidates its
// cache entry.
func (s *DirectoryService) UpdateLawyer(ctx context.Context, id int64, patch *repository.LawyerPatch) (*model.Lawyer, error) {
	if patch == nil || patch.IsEmpty() {
		return nil, Validation("no updatable fields provided")
	}
	if err := validateLawyerPatch(patch); err != nil {
		return nil, err
	}

	if err := s.store.UpdateLawyer(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrLawyerNotFound) {
			return nil, ErrLawyerNotFound
		}
		if errors.Is(err, repository.ErrEmptyPatch) {
			return nil, Validation("no updatable fields provided")
		}
		if errors.Is(err, repository.ErrFieldOutOfRange) {
			return nil, Validation("field value out of range")
		}
		return nil, err
	}

	s.metrics.IncLawyerUpdated()

	s.invalidate(ctx, id)

	updated, err := s.GetLawyer(ctx, id)
	if err != nil {
		return nil, err
	}

	s.emitCatalogEvent(ctx, model.EventLawyerUpdated, updated)

	return updated, nil
}

// DeleteLawyer removes a profile from the catalog. Collection entries and
// history rows referencing it go with it via cascade.
func (s *DirectoryService) DeleteLawyer(ctx context.Context, id int64) error {
	// Snapshot the profile before the delete so the deletion event can
	// still describe it.
	var snapshot *model.Lawyer
	if s.catalogEvents != nil {
		snapshot, _ = s.store.GetLawyer(ctx, id)
	}

	if err := s.store.DeleteLawyer(ctx, id); err != nil {
		if errors.Is(err, repository.ErrLawyerNotFound) {
			return ErrLawyerNotFound
		}
		return err
	}

	s.metrics.IncLawyerDeleted()

	s.invalidate(ctx, id)

	if snapshot != nil {
		s.emitCatalogEvent(ctx, model.EventLawyerDeleted, snapshot)
	}

	return nil
}

// emitCatalogEvent hands a change to the webhook sink. Failures are
// logged; catalog writes never roll back over notification problems.
func (s *DirectoryService) emitCatalogEvent(ctx context.Context, eventType model.EventType, lawyer *model.Lawyer) {
	if s.catalogEvents == nil {
		return
	}
	if err := s.catalogEvents.LawyerChanged(ctx, eventType, lawyer); err != nil {
		s.logger.Warn("catalog event fan-out failed",
			"event_type", string(eventType),
			"lawyer_id", lawyer.ID,
			"error", err,
		)
	}
}

func (s *DirectoryService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateLawyer(ctx, id); err != nil {
		s.logger.Warn("lawyer cache invalidation failed", "lawyer_id", id, "error", err)
	}
}

func validateLawyer(lawyer *model.Lawyer) error {
	if lawyer.Name == "" {
		return Validation("name is required")
	}
	if lawyer.Firm == "" {
		return Validation("firm is required")
	}
	if lawyer.PracticeArea == "" {
		return Validation("practice area is required")
	}
	if lawyer.ExperienceYears < 0 {
		return Validation("experience years cannot be negative")
	}
	if lawyer.SuccessRate < 0 || lawyer.SuccessRate > 100 {
		return Validation("success rate must be between 0 and 100")
	}
	if lawyer.HourlyRateMin <= 0 {
		return Validation("minimum hourly rate must be positive")
	}
	if lawyer.HourlyRateMax < lawyer.HourlyRateMin {
		return Validation("minimum hourly rate cannot exceed maximum")
	}
	return nil
}

func validateLawyerPatch(patch *repository.LawyerPatch) error {
	if patch.Name != nil && *patch.Name == "" {
		return Validation("name cannot be empty")
	}
	if patch.Firm != nil && *patch.Firm == "" {
		return Validation("firm cannot be empty")
	}
	if patch.PracticeArea != nil && *patch.PracticeArea == "" {
		return Validation("practice area cannot be empty")
	}
	if patch.ExperienceYears != nil && *patch.ExperienceYears < 0 {
		return Validation("experience years cannot be negative")
	}
	if patch.SuccessRate != nil && (*patch.SuccessRate < 0 || *patch.SuccessRate > 100) {
		return Validation("success rate must be between 0 and 100")
	}
	if patch.HourlyRateMin != nil && *patch.HourlyRateMin <= 0 {
		return Validation("minimum hourly rate must be positive")
	}
	if patch.HourlyRateMax != nil && *patch.HourlyRateMax <= 0 {
		return Validation("maximum hourly rate must be positive")
	}
	if patch.HourlyRateMin != nil && patch.HourlyRateMax != nil && *patch.HourlyRateMin > *patch.HourlyRateMax {
		return Validation("minimum hourly rate cannot exceed maximum")
	}
	return nil
}
