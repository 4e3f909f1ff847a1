package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/legalconnect/legalconnect/internal/auth"
	"github.com/legalconnect/legalconnect/internal/handler/dto"
	"github.com/legalconnect/legalconnect/internal/model"
	"github.com/legalconnect/legalconnect/internal/service"
)

// CollectionHandler handles the per-user shortlist and comparison set.
type CollectionHandler struct {
	svc    *service.CollectionService
	logger *slog.Logger
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(svc *service.CollectionService, logger *slog.Logger) *CollectionHandler {
	return &CollectionHandler{
		svc:    svc,
		logger: logger,
	}
}

// ListShortlist handles GET /api/shortlist.
func (h *CollectionHandler) ListShortlist(w http.ResponseWriter, r *http.Request) {
	h.listCollection(w, r, "shortlist", h.svc.ListShortlist)
}

// AddToShortlist handles POST /api/shortlist/{lawyerId}.
func (h *CollectionHandler) AddToShortlist(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.svc.AddToShortlist, http.StatusCreated, "Lawyer added to shortlist")
}

// RemoveFromShortlist handles DELETE /api/shortlist/{lawyerId}.
func (h *CollectionHandler) RemoveFromShortlist(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.svc.RemoveFromShortlist, http.StatusOK, "Lawyer removed from shortlist")
}

// ListComparison handles GET /api/comparison.
func (h *CollectionHandler) ListComparison(w http.ResponseWriter, r *http.Request) {
	h.listCollection(w, r, "comparison", h.svc.ListComparison)
}

// AddToComparison handles POST /api/comparison/{lawyerId}.
func (h *CollectionHandler) AddToComparison(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.svc.AddToComparison, http.StatusCreated, "Lawyer added to comparison")
}

// RemoveFromComparison handles DELETE /api/comparison/{lawyerId}.
func (h *CollectionHandler) RemoveFromComparison(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.svc.RemoveFromComparison, http.StatusOK, "Lawyer removed from comparison")
}

// ClearComparison handles DELETE /api/comparison.
func (h *CollectionHandler) ClearComparison(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	if err := h.svc.ClearComparison(r.Context(), identity.UserID); err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Comparison cleared"})
}

// listCollection renders a collection under its envelope key.
func (h *CollectionHandler) listCollection(w http.ResponseWriter, r *http.Request, key string, list func(ctx context.Context, userID int64) ([]*model.Lawyer, error)) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	lawyers, err := list(r.Context(), identity.UserID)
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		key: dto.ToLawyerResponses(lawyers),
	})
}

// mutate runs an add or remove against the identified user's collection.
func (h *CollectionHandler) mutate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, lawyerID int64) error, status int, message string) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	lawyerID, err := lawyerIDParam(r, "lawyerId")
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	if err := op(r.Context(), identity.UserID, lawyerID); err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	writeJSON(w, status, dto.MessageResponse{Message: message})
}
