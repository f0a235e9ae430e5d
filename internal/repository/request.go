package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/agentconnect/profiles-server-go/internal/model"
)

type RequestRepository interface {
	// Create inserts a new request with status pending. Profile existence
	// is the caller's responsibility; the store does not resolve ids.
	Create(ctx context.Context, params model.CreateAppointmentRequestParams) (*model.AppointmentRequest, error)
	FindByID(ctx context.Context, id string) (*model.AppointmentRequest, error)
	FindByProfileID(ctx context.Context, profileID string) ([]model.AppointmentRequest, error)
	FindByProfileIDs(ctx context.Context, profileIDs []string) ([]model.AppointmentRequest, error)
	FindBySenderUserID(ctx context.Context, userID string) ([]model.AppointmentRequest, error)
	// UpdateStatus overwrites the status unconditionally and reports
	// whether the request exists.
	UpdateStatus(ctx context.Context, id string, status model.RequestStatus) (bool, error)
	Count(ctx context.Context) (int, error)
}

type requestRepo struct {
	mu       sync.RWMutex
	requests map[string]*model.AppointmentRequest
}

func NewRequestRepository() RequestRepository {
	return &requestRepo{requests: make(map[string]*model.AppointmentRequest)}
}

func (r *requestRepo) Create(ctx context.Context, params model.CreateAppointmentRequestParams) (*model.AppointmentRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request := &model.AppointmentRequest{
		ID:             uuid.NewString(),
		ProfileID:      params.ProfileID,
		RequesterName:  params.RequesterName,
		RequesterEmail: params.RequesterEmail,
		Message:        params.Message,
		PreferredTime:  params.PreferredTime,
		RequestType:    params.RequestType,
		Status:         model.RequestStatusPending,
		CreatedAt:      time.Now(),
		SenderUserID:   params.SenderUserID,
	}
	r.requests[request.ID] = request

	return snapshotRequest(request), nil
}

func (r *requestRepo) FindByID(ctx context.Context, id string) (*model.AppointmentRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	return snapshotRequest(request), nil
}

func (r *requestRepo) FindByProfileID(ctx context.Context, profileID string) ([]model.AppointmentRequest, error) {
	return r.FindByProfileIDs(ctx, []string{profileID})
}

func (r *requestRepo) FindByProfileIDs(ctx context.Context, profileIDs []string) ([]model.AppointmentRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(profileIDs))
	for _, id := range profileIDs {
		wanted[id] = struct{}{}
	}

	var requests []model.AppointmentRequest
	for _, request := range r.requests {
		if _, ok := wanted[request.ProfileID]; ok {
			requests = append(requests, *snapshotRequest(request))
		}
	}
	return requests, nil
}

func (r *requestRepo) FindBySenderUserID(ctx context.Context, userID string) ([]model.AppointmentRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var requests []model.AppointmentRequest
	for _, request := range r.requests {
		if request.SenderUserID != nil && *request.SenderUserID == userID {
			requests = append(requests, *snapshotRequest(request))
		}
	}
	return requests, nil
}

func (r *requestRepo) UpdateStatus(ctx context.Context, id string, status model.RequestStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	request, ok := r.requests[id]
	if !ok {
		return false, nil
	}
	request.Status = status
	return true, nil
}

func (r *requestRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.requests), nil
}

func snapshotRequest(a *model.AppointmentRequest) *model.AppointmentRequest {
	copied := *a
	if a.PreferredTime != nil {
		t := *a.PreferredTime
		copied.PreferredTime = &t
	}
	if a.SenderUserID != nil {
		s := *a.SenderUserID
		copied.SenderUserID = &s
	}
	return &copied
}
