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

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

func (h *AppointmentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.With(middleware.RequireAuth).Patch("/{requestID}/status", h.UpdateStatus)

	return r
}

// Create accepts contact requests from anonymous and authenticated callers
// alike; the sender user id is recorded only when a session is present.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileID      string  `json:"profileId"`
		RequesterName  string  `json:"requesterName"`
		RequesterEmail string  `json:"requesterEmail"`
		Message        string  `json:"message"`
		PreferredTime  *string `json:"preferredTime"`
		RequestType    string  `json:"requestType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	params := model.CreateAppointmentRequestParams{
		ProfileID:      req.ProfileID,
		RequesterName:  req.RequesterName,
		RequesterEmail: req.RequesterEmail,
		Message:        req.Message,
		PreferredTime:  req.PreferredTime,
		RequestType:    model.RequestType(req.RequestType),
	}
	if user := middleware.GetUser(r.Context()); user != nil {
		params.SenderUserID = &user.ID
	}

	request, err := h.appointmentService.Create(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:      audit.EventRequestCreate,
		ProfileID: request.ProfileID,
	})

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":   "Request submitted successfully",
		"requestId": request.ID,
	})
}

func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.ValidationError("Invalid request body"))
		return
	}

	request, err := h.appointmentService.UpdateStatus(r.Context(), user.ID, requestID, model.RequestStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:      audit.EventStatusUpdate,
		UserID:    user.ID,
		ProfileID: request.ProfileID,
		Details:   map[string]interface{}{"status": req.Status},
	})

	writeJSON(w, http.StatusOK, request)
}

// Incoming lists requests targeting any of the caller's profiles.
func (h *AppointmentHandler) Incoming(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	requests, err := h.appointmentService.IncomingForUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

// Sent lists requests the caller submitted while authenticated.
func (h *AppointmentHandler) Sent(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	requests, err := h.appointmentService.SentByUser(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requests)
}
