package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tingling/internal/model"
	"tingling/internal/repository"
	"tingling/internal/util"

	"github.com/google/uuid"
)

const defaultEmoji = "👋"

type SignInInput struct {
	Credential string
	Name       string
	Emoji      string
}

type SignInResult struct {
	AccessToken string      `json:"access_token"`
	ExpiresAt   time.Time   `json:"expires_at"`
	User        *model.User `json:"user"`
	Created     bool        `json:"created"`
}

// AuthService establishes sessions. Everything past it only sees user ids.
type AuthService interface {
	SignIn(ctx context.Context, input SignInInput) (*SignInResult, error)
	SignOut(sessionID, userID string) error
	Authenticate(token string) (*util.Claims, error)
}

type authService struct {
	verifier    IdentityVerifier
	userService UserService
	sessions    repository.SessionRepository
	jwtSecret   string
	tokenTTL    time.Duration
}

func NewAuthService(
	verifier IdentityVerifier,
	userService UserService,
	sessions repository.SessionRepository,
	jwtSecret string,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		verifier:    verifier,
		userService: userService,
		sessions:    sessions,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

// SignIn verifies the credential, creating the user on first sign-in, marks
// them online and issues an access token bound to a new session
func (s *authService) SignIn(ctx context.Context, input SignInInput) (*SignInResult, error) {
	identity, err := s.verifier.Verify(ctx, input.Credential)
	if err != nil {
		return nil, logFailure("SignIn", err)
	}

	user, err := s.userService.GetUserByGoogleID(identity.Subject)
	if err != nil {
		return nil, err
	}

	created := false
	if user == nil {
		user, err = s.createFromIdentity(identity, input)
		switch {
		case errors.Is(err, ErrUserExists):
			// A concurrent sign-in for the same account created it first
			if user, err = s.userService.GetUserByGoogleID(identity.Subject); err != nil {
				return nil, err
			}
			if user == nil {
				return nil, ErrUserNotFound
			}
		case err != nil:
			return nil, err
		default:
			created = true
		}
	}

	if err := s.userService.SetPresence(user.ID, model.CallStatusOnline); err != nil {
		return nil, err
	}
	user.CallStatus = model.CallStatusOnline

	sessionID := uuid.New().String()
	token, expiresAt, err := util.GenerateToken(user.ID, sessionID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, logFailure("SignIn", err)
	}
	if err := s.sessions.Save(sessionID, user.ID, s.tokenTTL); err != nil {
		return nil, logFailure("SignIn", fmt.Errorf("failed to store session: %w", err))
	}

	return &SignInResult{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
		Created:     created,
	}, nil
}

func (s *authService) createFromIdentity(identity ExternalIdentity, input SignInInput) (*model.User, error) {
	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = strings.TrimSpace(input.Name)
	}
	emoji := input.Emoji
	if emoji == "" {
		emoji = defaultEmoji
	}

	var picture *string
	if identity.Picture != "" {
		picture = &identity.Picture
	}

	return s.userService.CreateUser(CreateUserInput{
		GoogleID:          identity.Subject,
		Name:              name,
		Emoji:             emoji,
		ProfilePictureURL: picture,
	})
}

func (s *authService) SignOut(sessionID, userID string) error {
	if err := s.sessions.Delete(sessionID); err != nil {
		return logFailure("SignOut", fmt.Errorf("failed to delete session: %w", err))
	}
	return s.userService.SetPresence(userID, model.CallStatusOffline)
}

// Authenticate validates the token signature and that its session is live
func (s *authService) Authenticate(token string) (*util.Claims, error) {
	claims, err := util.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	live, err := s.sessions.Belongs(claims.SessionID, claims.UserID)
	if err != nil {
		return nil, logFailure("Authenticate", err)
	}
	if !live {
		return nil, ErrSessionExpired
	}
	return claims, nil
}
