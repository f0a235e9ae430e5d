package service

import (
	"context"

	"github.com/rs/zerolog/log"

	apperrors "github.com/agentconnect/profiles-server-go/internal/errors"
	"github.com/agentconnect/profiles-server-go/internal/model"
	"github.com/agentconnect/profiles-server-go/internal/repository"
)

type AppointmentService struct {
	profileRepo repository.ProfileRepository
	requestRepo repository.RequestRepository
}

func NewAppointmentService(
	profileRepo repository.ProfileRepository,
	requestRepo repository.RequestRepository,
) *AppointmentService {
	return &AppointmentService{
		profileRepo: profileRepo,
		requestRepo: requestRepo,
	}
}

// Create records a contact request against a profile. Anyone may call it;
// the target profile id must resolve or nothing is stored.
func (s *AppointmentService) Create(ctx context.Context, params model.CreateAppointmentRequestParams) (*model.AppointmentRequest, error) {
	if params.ProfileID == "" {
		return nil, apperrors.MissingRequired("profileId")
	}
	if params.RequesterName == "" {
		return nil, apperrors.MissingRequired("requesterName")
	}
	if params.RequesterEmail == "" {
		return nil, apperrors.MissingRequired("requesterEmail")
	}
	if params.Message == "" {
		return nil, apperrors.MissingRequired("message")
	}
	if !model.IsValidRequestType(params.RequestType) {
		return nil, apperrors.InvalidInput("requestType", "must be appointment, quote or meeting")
	}

	profile, err := s.profileRepo.FindByID(ctx, params.ProfileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NotFound("Profile")
	}

	request, err := s.requestRepo.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("requestId", request.ID).
		Str("profileId", request.ProfileID).
		Str("requestType", string(request.RequestType)).
		Msg("appointment request created")

	return request, nil
}

// IncomingForUser returns the union of requests across the user's profiles.
func (s *AppointmentService) IncomingForUser(ctx context.Context, userID string) ([]model.AppointmentRequest, error) {
	profiles, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profileIDs := make([]string, 0, len(profiles))
	for _, p := range profiles {
		profileIDs = append(profileIDs, p.ID)
	}

	requests, err := s.requestRepo.FindByProfileIDs(ctx, profileIDs)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []model.AppointmentRequest{}
	}
	return requests, nil
}

func (s *AppointmentService) ForProfile(ctx context.Context, profileID string) ([]model.AppointmentRequest, error) {
	requests, err := s.requestRepo.FindByProfileID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []model.AppointmentRequest{}
	}
	return requests, nil
}

func (s *AppointmentService) SentByUser(ctx context.Context, userID string) ([]model.AppointmentRequest, error) {
	requests, err := s.requestRepo.FindBySenderUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []model.AppointmentRequest{}
	}
	return requests, nil
}

// UpdateStatus sets a request's status on behalf of userID, who must own the
// target profile's user. The overwrite itself is unconditional: no transition
// rules are enforced once ownership checks pass.
func (s *AppointmentService) UpdateStatus(ctx context.Context, userID, requestID string, status model.RequestStatus) (*model.AppointmentRequest, error) {
	if !model.IsValidRequestStatus(status) {
		return nil, apperrors.InvalidInput("status", "must be pending, accepted or rejected")
	}

	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, apperrors.NotFound("Request")
	}

	profile, err := s.profileRepo.FindByID(ctx, request.ProfileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NotFound("Profile")
	}
	if profile.UserID != userID {
		return nil, apperrors.Forbidden("Not the owner of this profile")
	}

	ok, err := s.requestRepo.UpdateStatus(ctx, requestID, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.NotFound("Request")
	}

	request.Status = status

	log.Info().
		Str("requestId", requestID).
		Str("status", string(status)).
		Msg("request status updated")

	return request, nil
}
