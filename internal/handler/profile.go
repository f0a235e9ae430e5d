package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agentconnect/profiles-server-go/internal/audit"
	apperrors "github.com/agentconnect/profiles-server-go/internal/errors"
	"github.com/agentconnect/profiles-server-go/internal/middleware"
	"github.com/agentconnect/profiles-server-go/internal/model"
	"github.com/agentconnect/profiles-server-go/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.With(middleware.RequireAuth).Post("/", h.Upsert)
	r.Get("/{profileID}", h.Get)

	return r
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var data model.ProfileData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	profile, err := h.profileService.Upsert(r.Context(), user.ID, data)
	if err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:      audit.EventProfileUpsert,
		UserID:    user.ID,
		ProfileID: profile.ID,
	})

	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")

	profile, err := h.profileService.Get(r.Context(), profileID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// MyProfile serves the authenticated user's own profile.
func (h *ProfileHandler) MyProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	profile, err := h.profileService.GetByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Search filters profiles by free-text query and skills tags.
func (h *ProfileHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	skills := r.URL.Query().Get("skills")

	profiles, err := h.profileService.Search(r.Context(), query, skills)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}
