package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/legalconnect/legalconnect/internal/handler/dto"
	"github.com/legalconnect/legalconnect/internal/model"
	"github.com/legalconnect/legalconnect/internal/service"
)

// LawyerHandler handles directory queries and catalog management.
type LawyerHandler struct {
	svc    *service.DirectoryService
	logger *slog.Logger
}

// NewLawyerHandler creates a new LawyerHandler.
func NewLawyerHandler(svc *service.DirectoryService, logger *slog.Logger) *LawyerHandler {
	return &LawyerHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/lawyers. Absent query parameters impose no
// constraint; malformed numeric values are ignored.
func (h *LawyerHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filters model.SearchFilters
	if area := query.Get("practiceArea"); area != "" {
		filters.PracticeArea = &area
	}
	if state := query.Get("state"); state != "" {
		filters.State = &state
	}
	if raw := query.Get("minExperience"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			filters.MinExperience = &v
		}
	}
	if raw := query.Get("maxRate"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MaxRate = &v
		}
	}
	filters.ResponseGuarantee = query.Get("responseGuarantee") == "true"

	lawyers, err := h.svc.Search(r.Context(), filters, query.Get("sortBy"))
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"lawyers": dto.ToLawyerResponses(lawyers),
	})
}

// Get handles GET /api/lawyers/{id}.
func (h *LawyerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := lawyerIDParam(r, "id")
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	lawyer, err := h.svc.GetLawyer(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"lawyer": dto.ToLawyerResponse(lawyer),
	})
}

// Create handles POST /api/lawyers. Admin only.
func (h *LawyerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLawyerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lawyer, err := h.svc.CreateLawyer(r.Context(), req.ToLawyer())
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	h.logger.Info("lawyer created",
		slog.Int64("lawyer_id", lawyer.ID),
		slog.String("practice_area", lawyer.PracticeArea),
	)

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Lawyer created successfully",
		"lawyer":  dto.ToLawyerResponse(lawyer),
	})
}

// Update handles PUT /api/lawyers/{id}. Admin only. The body is a
// partial patch; unknown keys are ignored.
func (h *LawyerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := lawyerIDParam(r, "id")
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	var req dto.UpdateLawyerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lawyer, err := h.svc.UpdateLawyer(r.Context(), id, req.ToPatch())
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	h.logger.Info("lawyer updated",
		slog.Int64("lawyer_id", id),
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Lawyer updated successfully",
		"lawyer":  dto.ToLawyerResponse(lawyer),
	})
}

// Delete handles DELETE /api/lawyers/{id}. Admin only.
func (h *LawyerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := lawyerIDParam(r, "id")
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	if err := h.svc.DeleteLawyer(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	h.logger.Info("lawyer deleted",
		slog.Int64("lawyer_id", id),
	)

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Lawyer deleted successfully"})
}
