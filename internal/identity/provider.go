// Package identity resolves login credentials to a stable external id.
// The simulated provider stands in for a federated identity exchange; a
// real client implements the same interface without touching the stores.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

type Provider interface {
	// ExternalID maps an email/name pair to the provider's stable user id.
	// The same email always resolves to the same id.
	ExternalID(email, name string) (string, error)
}

type SimulatedProvider struct{}

func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{}
}

func (p *SimulatedProvider) ExternalID(email, name string) (string, error) {
	sum := sha256.Sum256([]byte(email))
	return "ext_user_" + hex.EncodeToString(sum[:8]), nil
}
