package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/legalconnect/legalconnect/internal/auth"
	"github.com/legalconnect/legalconnect/internal/handler/dto"
	"github.com/legalconnect/legalconnect/internal/service"
)

// HistoryHandler handles the per-user search history log.
type HistoryHandler struct {
	svc    *service.HistoryService
	logger *slog.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(svc *service.HistoryService, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/history.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	records, err := h.svc.List(r.Context(), identity.UserID)
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToHistoryListResponse(records))
}

// Save handles POST /api/history.
func (h *HistoryHandler) Save(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	var req dto.SaveHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.svc.Record(r.Context(), service.RecordInput{
		UserID:            identity.UserID,
		PracticeArea:      req.PracticeArea,
		State:             req.State,
		MinExperience:     req.MinExperience,
		MaxRate:           req.MaxRate,
		ResponseGuarantee: req.ResponseGuarantee,
		ResultCount:       req.ResultCount,
	}); err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MessageResponse{Message: "Search saved to history"})
}
