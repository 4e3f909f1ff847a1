package service

import (
	"context"
	"time"

	"github.com/legalconnect/legalconnect/internal/model"
)

// Trend query bounds.
const (
	defaultTrendDays  = 30
	maxTrendDays      = 90
	defaultTrendLimit = 20
	maxTrendLimit     = 100
)

// TrendStore is the persistence surface TrendsService needs.
type TrendStore interface {
	TopSearchTrends(ctx context.Context, since time.Time, limit int) ([]*model.SearchTrend, error)
}

// TrendsService reads aggregated search trends.
type TrendsService struct {
	store TrendStore
}

// NewTrendsService creates a new TrendsService.
func NewTrendsService(store TrendStore) *TrendsService {
	return &TrendsService{store: store}
}

// TopTrends returns the busiest search buckets over the trailing
// window. Out-of-range parameters are clamped rather than rejected.
func (s *TrendsService) TopTrends(ctx context.Context, days, limit int) ([]*model.SearchTrend, error) {
	if days <= 0 {
		days = defaultTrendDays
	}
	if days > maxTrendDays {
		days = maxTrendDays
	}
	if limit <= 0 {
		limit = defaultTrendLimit
	}
	if limit > maxTrendLimit {
		limit = maxTrendLimit
	}

	since := time.Now().UTC().AddDate(0, 0, -days).Truncate(24 * time.Hour)
	return s.store.TopSearchTrends(ctx, since, limit)
}
