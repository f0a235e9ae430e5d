package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentconnect/profiles-server-go/internal/model"
)

func appointmentBody(profileID string) map[string]any {
	return map[string]any{
		"profileId":      profileID,
		"requesterName":  "Bob",
		"requesterEmail": "bob@example.com",
		"message":        "Can we meet?",
		"requestType":    "meeting",
	}
}

func TestAppointmentCreateEndpoint(t *testing.T) {
	t.Run("anonymous callers can create requests", func(t *testing.T) {
		s := newTestServer(t)
		token, _ := s.login(t, "a@x.com", "Alice")
		profile := s.createProfile(t, token)

		rec := s.do(t, http.MethodPost, "/appointments", "", appointmentBody(profile.ID))
		require.Equal(t, http.StatusCreated, rec.Code)

		var body struct {
			RequestID string `json:"requestId"`
		}
		decodeJSON(t, rec, &body)
		assert.NotEmpty(t, body.RequestID)
	})

	t.Run("missing profile yields 404 and stores nothing", func(t *testing.T) {
		s := newTestServer(t)
		token, _ := s.login(t, "a@x.com", "Alice")

		rec := s.do(t, http.MethodPost, "/appointments", "", appointmentBody("missing"))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = s.do(t, http.MethodGet, "/me/requests", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("authenticated creation records the sender", func(t *testing.T) {
		s := newTestServer(t)
		ownerToken, _ := s.login(t, "a@x.com", "Alice")
		profile := s.createProfile(t, ownerToken)

		senderToken, sender := s.login(t, "b@x.com", "Bob")

		rec := s.do(t, http.MethodPost, "/appointments", senderToken, appointmentBody(profile.ID))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = s.do(t, http.MethodGet, "/me/requests/sent", senderToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var sent []model.AppointmentRequest
		decodeJSON(t, rec, &sent)
		require.Len(t, sent, 1)
		require.NotNil(t, sent[0].SenderUserID)
		assert.Equal(t, sender.ID, *sent[0].SenderUserID)
	})
}

func TestIncomingRequestsEndpoint(t *testing.T) {
	t.Run("owner sees requests for their profile", func(t *testing.T) {
		s := newTestServer(t)
		token, _ := s.login(t, "a@x.com", "Alice")
		profile := s.createProfile(t, token)

		rec := s.do(t, http.MethodPost, "/appointments", "", appointmentBody(profile.ID))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = s.do(t, http.MethodGet, "/me/requests", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var requests []model.AppointmentRequest
		decodeJSON(t, rec, &requests)
		require.Len(t, requests, 1)
		assert.Equal(t, model.RequestStatusPending, requests[0].Status)
	})

	t.Run("requires authentication", func(t *testing.T) {
		s := newTestServer(t)

		rec := s.do(t, http.MethodGet, "/me/requests", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUpdateStatusEndpoint(t *testing.T) {
	setup := func(t *testing.T) (*testServer, string, string) {
		s := newTestServer(t)
		ownerToken, _ := s.login(t, "a@x.com", "Alice")
		profile := s.createProfile(t, ownerToken)

		rec := s.do(t, http.MethodPost, "/appointments", "", appointmentBody(profile.ID))
		require.Equal(t, http.StatusCreated, rec.Code)

		var body struct {
			RequestID string `json:"requestId"`
		}
		decodeJSON(t, rec, &body)
		return s, ownerToken, body.RequestID
	}

	t.Run("owner can accept", func(t *testing.T) {
		s, ownerToken, requestID := setup(t)

		rec := s.do(t, http.MethodPatch, "/appointments/"+requestID+"/status", ownerToken, map[string]string{
			"status": "accepted",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var request model.AppointmentRequest
		decodeJSON(t, rec, &request)
		assert.Equal(t, model.RequestStatusAccepted, request.Status)
	})

	t.Run("anonymous callers get 401", func(t *testing.T) {
		s, _, requestID := setup(t)

		rec := s.do(t, http.MethodPatch, "/appointments/"+requestID+"/status", "", map[string]string{
			"status": "accepted",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-owner gets 403 and the status is untouched", func(t *testing.T) {
		s, ownerToken, requestID := setup(t)
		intruderToken, _ := s.login(t, "b@x.com", "Mallory")

		rec := s.do(t, http.MethodPatch, "/appointments/"+requestID+"/status", intruderToken, map[string]string{
			"status": "accepted",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = s.do(t, http.MethodGet, "/me/requests", ownerToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var requests []model.AppointmentRequest
		decodeJSON(t, rec, &requests)
		require.Len(t, requests, 1)
		assert.Equal(t, model.RequestStatusPending, requests[0].Status)
	})

	t.Run("unknown request id gets 404", func(t *testing.T) {
		s, ownerToken, _ := setup(t)

		rec := s.do(t, http.MethodPatch, "/appointments/missing/status", ownerToken, map[string]string{
			"status": "accepted",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid status value gets 400", func(t *testing.T) {
		s, ownerToken, requestID := setup(t)

		rec := s.do(t, http.MethodPatch, "/appointments/"+requestID+"/status", ownerToken, map[string]string{
			"status": "approved",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
