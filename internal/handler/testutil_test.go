package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/agentconnect/profiles-server-go/internal/identity"
	"github.com/agentconnect/profiles-server-go/internal/middleware"
	"github.com/agentconnect/profiles-server-go/internal/model"
	"github.com/agentconnect/profiles-server-go/internal/repository"
	"github.com/agentconnect/profiles-server-go/internal/service"
)

type testServer struct {
	router      chi.Router
	authService *service.AuthService
}

// newTestServer wires handlers the way cmd/server does, minus rate limiting
// and metrics.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	requestRepo := repository.NewRequestRepository()
	sessionRepo := repository.NewSessionRepository()

	authService := service.NewAuthService(identity.NewSimulatedProvider(), userRepo, sessionRepo)
	profileService := service.NewProfileService(profileRepo)
	appointmentService := service.NewAppointmentService(profileRepo, requestRepo)

	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	appointmentHandler := NewAppointmentHandler(appointmentService)
	discoveryHandler := NewDiscoveryHandler(profileService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	r := chi.NewRouter()
	r.Use(authMiddleware.Handler)
	r.Mount("/auth", authHandler.Routes())
	r.Mount("/profiles", profileHandler.Routes())
	r.Route("/me", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/profile", profileHandler.MyProfile)
		r.Get("/requests", appointmentHandler.Incoming)
		r.Get("/requests/sent", appointmentHandler.Sent)
	})
	r.Mount("/appointments", appointmentHandler.Routes())
	r.Get("/search/profiles", profileHandler.Search)
	r.Get("/agent/profiles", discoveryHandler.Profiles)

	return &testServer{router: r, authService: authService}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email, name string) (string, *model.User) {
	t.Helper()

	token, user, err := s.authService.Login(context.Background(), email, name)
	require.NoError(t, err)
	return token, user
}

func (s *testServer) createProfile(t *testing.T, token string) model.Profile {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/profiles", token, model.ProfileData{
		Name:         "Alice",
		Email:        "alice@example.com",
		Skills:       []string{"Go", "Python"},
		Bio:          "Backend engineer",
		AvailableFor: []model.RequestType{model.RequestTypeAppointment, model.RequestTypeMeeting},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var profile model.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	return profile
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
}
