package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agentconnect/profiles-server-go/internal/audit"
	"github.com/agentconnect/profiles-server-go/internal/identity"
	"github.com/agentconnect/profiles-server-go/internal/model"
	"github.com/agentconnect/profiles-server-go/internal/repository"
)

const SessionTTL = 7 * 24 * time.Hour

// AuthService owns the session lifecycle: it issues opaque tokens, resolves
// them back to users, and revokes them on logout. The token is a reversible
// encoding of {sessionId, userId}, not a signed credential; it obscures the
// session identity but does not protect it.
type AuthService struct {
	provider    identity.Provider
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository

	// now is swapped out in tests to force expiry.
	now func() time.Time
}

func NewAuthService(
	provider identity.Provider,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
) *AuthService {
	return &AuthService{
		provider:    provider,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		now:         time.Now,
	}
}

type tokenClaims struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

func encodeToken(claims tokenClaims) (string, error) {
	data, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func decodeToken(token string) (*tokenClaims, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}
	var claims tokenClaims
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// Login exchanges credentials for a session token, creating the user on
// first login for the resolved external id.
func (s *AuthService) Login(ctx context.Context, email, name string) (string, *model.User, error) {
	externalID, err := s.provider.ExternalID(email, name)
	if err != nil {
		return "", nil, err
	}

	user, err := s.userRepo.FindByExternalID(ctx, externalID)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		user, err = s.userRepo.Create(ctx, model.CreateUserParams{
			ExternalID: externalID,
			Email:      email,
			Name:       name,
		})
		if err != nil {
			return "", nil, err
		}
		log.Info().Str("userId", user.ID).Msg("user created on first login")
		audit.Log(ctx, audit.Event{Type: audit.EventUserCreate, UserID: user.ID})
	}

	token, err := s.CreateSession(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// CreateSession stores a session valid for SessionTTL and returns its token.
func (s *AuthService) CreateSession(ctx context.Context, userID string) (string, error) {
	now := s.now()
	session := &model.Session{
		ID:        fmt.Sprintf("session_%s_%d", userID, now.UnixNano()),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return "", err
	}

	return encodeToken(tokenClaims{SessionID: session.ID, UserID: userID})
}

// VerifyToken resolves a token to its live session. Any decode failure is
// treated as "no session": a malformed token is indistinguishable from not
// being logged in. Expired sessions are evicted on access.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*model.Session, error) {
	claims, err := decodeToken(token)
	if err != nil {
		return nil, nil
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil || session == nil {
		return nil, err
	}

	if !session.ExpiresAt.After(s.now()) {
		if _, err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return session, nil
}

// Logout destroys the token's session. It is idempotent: a second call, a
// malformed token, or an unknown session all report false.
func (s *AuthService) Logout(ctx context.Context, token string) (bool, error) {
	claims, err := decodeToken(token)
	if err != nil {
		return false, nil
	}
	return s.sessionRepo.Delete(ctx, claims.SessionID)
}

// CurrentUser resolves a bearer token to its user. Absence at any step is
// "anonymous", not an error.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}
	session, err := s.VerifyToken(ctx, token)
	if err != nil || session == nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, session.UserID)
}
