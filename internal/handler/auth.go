package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/legalconnect/legalconnect/internal/auth"
	"github.com/legalconnect/legalconnect/internal/handler/dto"
	"github.com/legalconnect/legalconnect/internal/service"
)

// AuthHandler handles registration, login and the current-user lookup.
type AuthHandler struct {
	svc    *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.svc.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	h.logger.Info("user registered",
		slog.Int64("user_id", user.ID),
	)

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		Message: "User created successfully",
		User:    dto.ToUserResponse(user),
		Token:   token,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		User:    dto.ToUserResponse(user),
		Token:   token,
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	user, err := h.svc.CurrentUser(r.Context(), identity.UserID)
	if err != nil {
		respondServiceError(w, h.logger, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CurrentUserResponse{User: dto.ToUserResponse(user)})
}
