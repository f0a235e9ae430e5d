package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/agentconnect/profiles-server-go/internal/audit"
	apperrors "github.com/agentconnect/profiles-server-go/internal/errors"
	"github.com/agentconnect/profiles-server-go/internal/middleware"
	"github.com/agentconnect/profiles-server-go/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.With(middleware.RequireAuth).Get("/me", h.Me)

	return r
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}
	if req.Email == "" {
		writeError(w, apperrors.MissingRequired("email"))
		return
	}
	if req.Name == "" {
		writeError(w, apperrors.MissingRequired("name"))
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Email, req.Name)
	if err != nil {
		log.Error().Err(err).Msg("login failed")
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:   audit.EventLoginSuccess,
		UserID: user.ID,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusOK, map[string]bool{"success": false})
		return
	}

	ok, err := h.authService.Logout(r.Context(), token)
	if err != nil {
		log.Error().Err(err).Msg("logout failed")
		writeError(w, err)
		return
	}

	if ok {
		audit.LogFromRequest(r, audit.Event{Type: audit.EventLogout})
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func extractBearerToken(r *http.Request) string {
	const prefix = "Bearer "
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) > len(prefix) && authHeader[:len(prefix)] == prefix {
		return authHeader[len(prefix):]
	}
	return ""
}
