package handler

import (
	"net/http"

	"github.com/agentconnect/profiles-server-go/internal/service"
)

// DiscoveryHandler serves the read-only profile projection for automated
// external consumers. No authentication, no mutation.
type DiscoveryHandler struct {
	profileService *service.ProfileService
}

func NewDiscoveryHandler(profileService *service.ProfileService) *DiscoveryHandler {
	return &DiscoveryHandler{profileService: profileService}
}

func (h *DiscoveryHandler) Profiles(w http.ResponseWriter, r *http.Request) {
	feed, err := h.profileService.AgentFeed(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"profiles": feed,
	})
}
