package model

import (
	"time"
)

type AppointmentRequest struct {
	ID             string        `json:"id"`
	ProfileID      string        `json:"profileId"`
	RequesterName  string        `json:"requesterName"`
	RequesterEmail string        `json:"requesterEmail"`
	Message        string        `json:"message"`
	PreferredTime  *string       `json:"preferredTime,omitempty"`
	RequestType    RequestType   `json:"requestType"`
	Status         RequestStatus `json:"status"`
	CreatedAt      time.Time     `json:"createdAt"`
	SenderUserID   *string       `json:"senderUserId,omitempty"`
}

type CreateAppointmentRequestParams struct {
	ProfileID      string
	RequesterName  string
	RequesterEmail string
	Message        string
	PreferredTime  *string
	RequestType    RequestType
	// SenderUserID is set only when the requester was authenticated.
	SenderUserID *string
}
