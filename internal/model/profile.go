package model

import (
	"time"
)

type Profile struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Skills       []string      `json:"skills"`
	Bio          string        `json:"bio"`
	AvailableFor []RequestType `json:"availableFor"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// ProfileData carries the mutable fields of a profile. ID, UserID and
// CreatedAt are owned by the store and never taken from callers.
type ProfileData struct {
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Skills       []string      `json:"skills"`
	Bio          string        `json:"bio"`
	AvailableFor []RequestType `json:"availableFor"`
}

// AgentProfile is the discovery-feed projection of a profile: no email,
// no user linkage, no timestamps.
type AgentProfile struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Skills       []string      `json:"skills"`
	Bio          string        `json:"bio"`
	AvailableFor []RequestType `json:"availableFor"`
}

func (p *Profile) AgentView() AgentProfile {
	return AgentProfile{
		ID:           p.ID,
		Name:         p.Name,
		Skills:       p.Skills,
		Bio:          p.Bio,
		AvailableFor: p.AvailableFor,
	}
}
