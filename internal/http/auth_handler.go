package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/minicrm/minicrm/internal/domain"
	"github.com/minicrm/minicrm/internal/service"
	"github.com/minicrm/minicrm/pkg/logger"
)

type AuthHandler struct {
	service domain.AuthServiceInterface
	logger  logger.Logger
}

func NewAuthHandler(service domain.AuthServiceInterface, logger logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/auth.register", http.HandlerFunc(h.handleRegister))
	mux.Handle("/api/auth.login", http.HandlerFunc(h.handleLogin))
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		var slugTaken *domain.ErrSlugTaken
		var tenantExists *domain.ErrTenantExists
		var userExists *domain.ErrUserExists
		switch {
		case errors.As(err, &slugTaken):
			WriteJSONError(w, slugTaken.Message, http.StatusBadRequest)
		case errors.As(err, &tenantExists), errors.As(err, &userExists):
			WriteJSONError(w, err.Error(), http.StatusConflict)
		default:
			h.logger.WithField("error", err.Error()).Error("Registration failed")
			WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user": user,
	})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		var loginFailed *service.ErrLoginFailed
		switch {
		case errors.As(err, &loginFailed):
			WriteJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, domain.ErrUserInactive):
			WriteJSONError(w, "Account is inactive", http.StatusBadRequest)
		default:
			h.logger.WithField("error", err.Error()).Error("Login failed")
			WriteJSONError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
