package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/legalconnect/legalconnect/internal/handler/dto"
	"github.com/legalconnect/legalconnect/internal/service"
)

// AnalyticsHandler exposes aggregated search trends.
type AnalyticsHandler struct {
	svc    *service.TrendsService
	logger *slog.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(svc *service.TrendsService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		svc:    svc,
		logger: logger,
	}
}

// Trends handles GET /api/analytics/trends. Malformed query values
// fall back to the service defaults.
func (h *AnalyticsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	trends, err := h.svc.TopTrends(r.Context(), days, limit)
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTrendListResponse(trends))
}
