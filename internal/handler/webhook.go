package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/legalconnect/legalconnect/internal/handler/dto"
	"github.com/legalconnect/legalconnect/internal/service"
)

// WebhookHandler handles admin management of catalog-change webhooks.
type WebhookHandler struct {
	svc    *service.WebhookService
	logger *slog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(svc *service.WebhookService, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/webhooks.
func (h *WebhookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	endpoint, err := h.svc.Register(r.Context(), service.CreateWebhookInput{
		Name:       req.Name,
		TargetURL:  req.TargetURL,
		EventTypes: req.EventTypes,
	})
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	h.logger.Info("webhook registered",
		slog.String("webhook_id", endpoint.ID),
		slog.String("name", endpoint.Name),
	)

	writeJSON(w, http.StatusCreated, dto.CreateWebhookResponse{
		Message: "Webhook registered successfully",
		Webhook: dto.ToWebhookResponse(endpoint),
		Secret:  endpoint.Secret,
	})
}

// List handles GET /api/webhooks.
func (h *WebhookHandler) List(w http.ResponseWriter, r *http.Request) {
	endpoints, err := h.svc.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToWebhookListResponse(endpoints))
}

// Delete handles DELETE /api/webhooks/{id}.
func (h *WebhookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid webhook id")
		return
	}

	if err := h.svc.Remove(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	h.logger.Info("webhook deleted", slog.String("webhook_id", id))

	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Webhook deleted successfully"})
}
