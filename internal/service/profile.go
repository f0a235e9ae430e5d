package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/agentconnect/profiles-server-go/internal/errors"
	"github.com/agentconnect/profiles-server-go/internal/model"
	"github.com/agentconnect/profiles-server-go/internal/repository"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// Upsert creates or overwrites the caller's profile. The user id comes from
// the authenticated session, never from the request body.
func (s *ProfileService) Upsert(ctx context.Context, userID string, data model.ProfileData) (*model.Profile, error) {
	profile, err := s.profileRepo.Upsert(ctx, userID, data)
	if err != nil {
		return nil, err
	}
	log.Info().Str("profileId", profile.ID).Str("userId", userID).Msg("profile upserted")
	return profile, nil
}

func (s *ProfileService) List(ctx context.Context) ([]model.Profile, error) {
	return s.profileRepo.FindAll(ctx)
}

func (s *ProfileService) Get(ctx context.Context, id string) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NotFound("Profile")
	}
	return profile, nil
}

// GetByUser returns the user's profile, of which there is at most one.
func (s *ProfileService) GetByUser(ctx context.Context, userID string) (*model.Profile, error) {
	profiles, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, apperrors.NotFound("Profile")
	}
	return &profiles[0], nil
}

// Search filters profiles by a case-insensitive substring on name/bio and a
// comma-separated skills list matched as a case-insensitive set intersection.
func (s *ProfileService) Search(ctx context.Context, query, skills string) ([]model.Profile, error) {
	profiles, err := s.profileRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	results := profiles

	if query != "" {
		q := strings.ToLower(query)
		filtered := results[:0]
		for _, p := range results {
			if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Bio), q) {
				filtered = append(filtered, p)
			}
		}
		results = filtered
	}

	if skills != "" {
		wanted := splitSkills(skills)
		filtered := results[:0]
		for _, p := range results {
			if hasAnySkill(p.Skills, wanted) {
				filtered = append(filtered, p)
			}
		}
		results = filtered
	}

	if results == nil {
		results = []model.Profile{}
	}
	return results, nil
}

// AgentFeed is the discovery projection for automated consumers: profiles
// without email, user linkage or timestamps.
func (s *ProfileService) AgentFeed(ctx context.Context) ([]model.AgentProfile, error) {
	profiles, err := s.profileRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	feed := make([]model.AgentProfile, 0, len(profiles))
	for i := range profiles {
		feed = append(feed, profiles[i].AgentView())
	}
	return feed, nil
}

func splitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}
	return cleaned
}

func hasAnySkill(profileSkills, wanted []string) bool {
	owned := make(map[string]struct{}, len(profileSkills))
	for _, skill := range profileSkills {
		owned[strings.ToLower(skill)] = struct{}{}
	}
	for _, skill := range wanted {
		if _, ok := owned[skill]; ok {
			return true
		}
	}
	return false
}
