package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/agentconnect/profiles-server-go/internal/errors"
	"github.com/agentconnect/profiles-server-go/internal/model"
)

type ProfileRepository interface {
	// Upsert creates a profile for the user, or overwrites the mutable
	// fields of the one it already owns. ID, UserID and CreatedAt never
	// change after creation.
	Upsert(ctx context.Context, userID string, data model.ProfileData) (*model.Profile, error)
	FindAll(ctx context.Context) ([]model.Profile, error)
	FindByID(ctx context.Context, id string) (*model.Profile, error)
	FindByUserID(ctx context.Context, userID string) ([]model.Profile, error)
	Count(ctx context.Context) (int, error)
}

type profileRepo struct {
	mu       sync.RWMutex
	profiles map[string]*model.Profile
}

func NewProfileRepository() ProfileRepository {
	return &profileRepo{profiles: make(map[string]*model.Profile)}
}

func validateProfileData(data model.ProfileData) error {
	if data.Name == "" {
		return apperrors.MissingRequired("name")
	}
	if data.Email == "" {
		return apperrors.MissingRequired("email")
	}
	if data.Skills == nil {
		return apperrors.MissingRequired("skills")
	}
	if data.Bio == "" {
		return apperrors.MissingRequired("bio")
	}
	if data.AvailableFor == nil {
		return apperrors.MissingRequired("availableFor")
	}
	for _, t := range data.AvailableFor {
		if !model.IsValidRequestType(t) {
			return apperrors.InvalidInput("availableFor", "must be appointment, quote or meeting")
		}
	}
	return nil
}

func (r *profileRepo) Upsert(ctx context.Context, userID string, data model.ProfileData) (*model.Profile, error) {
	if err := validateProfileData(data); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()

	for _, profile := range r.profiles {
		if profile.UserID == userID {
			profile.Name = data.Name
			profile.Email = data.Email
			profile.Skills = append([]string(nil), data.Skills...)
			profile.Bio = data.Bio
			profile.AvailableFor = append([]model.RequestType(nil), data.AvailableFor...)
			profile.UpdatedAt = now
			return snapshotProfile(profile), nil
		}
	}

	profile := &model.Profile{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         data.Name,
		Email:        data.Email,
		Skills:       append([]string(nil), data.Skills...),
		Bio:          data.Bio,
		AvailableFor: append([]model.RequestType(nil), data.AvailableFor...),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.profiles[profile.ID] = profile

	return snapshotProfile(profile), nil
}

func (r *profileRepo) FindAll(ctx context.Context) ([]model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]model.Profile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		profiles = append(profiles, *snapshotProfile(profile))
	}
	return profiles, nil
}

func (r *profileRepo) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[id]
	if !ok {
		return nil, nil
	}
	return snapshotProfile(profile), nil
}

func (r *profileRepo) FindByUserID(ctx context.Context, userID string) ([]model.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var profiles []model.Profile
	for _, profile := range r.profiles {
		if profile.UserID == userID {
			profiles = append(profiles, *snapshotProfile(profile))
		}
	}
	return profiles, nil
}

func (r *profileRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles), nil
}

func snapshotProfile(p *model.Profile) *model.Profile {
	copied := *p
	copied.Skills = append([]string(nil), p.Skills...)
	copied.AvailableFor = append([]model.RequestType(nil), p.AvailableFor...)
	return &copied
}
