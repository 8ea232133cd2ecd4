package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"techcorp/internal/auth"
	apperrors "techcorp/internal/errors"
	"techcorp/internal/model"
	"techcorp/internal/repository"
)

// AuthService handles credential verification, registration, and the session
// lifecycle around them.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*auth.Session, *model.User, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	users    repository.UserRepository
	hasher   auth.PasswordHasher
	sessions *auth.SessionManager

	// Digest verified when a username does not exist, so the not-found and
	// wrong-password paths do the same amount of hashing work.
	dummyDigest string
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, hasher auth.PasswordHasher, sessions *auth.SessionManager) AuthService {
	dummy, _ := hasher.Hash("decoy-password-for-timing")
	return &authService{
		users:       users,
		hasher:      hasher,
		sessions:    sessions,
		dummyDigest: dummy,
	}
}

// Register creates a new user with a hashed password and the registered role.
func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", apperrors.ErrValidation)
	}

	existing, err := s.users.FindByUsernameOrEmail(ctx, username, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: check user existence: %w", apperrors.ErrStoreUnavailable, err)
	}
	if existing != nil {
		if existing.Username == username {
			return nil, apperrors.ErrDuplicateUsername
		}
		return nil, apperrors.ErrDuplicateEmail
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: digest,
		Role:         string(auth.RoleRegistered),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: create user: %w", apperrors.ErrStoreUnavailable, err)
	}

	return user, nil
}

// Login verifies the credentials and opens a session for the user. Unknown
// usernames and wrong passwords return the same error.
func (s *authService) Login(ctx context.Context, username, password string) (*auth.Session, *model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.hasher.Verify(password, s.dummyDigest)
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("%w: find user: %w", apperrors.ErrStoreUnavailable, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     auth.ParseRole(user.Role),
	})
	if err != nil {
		return nil, nil, err
	}

	return session, user, nil
}

// Logout destroys the session. Logging out an already-destroyed session
// succeeds.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Destroy(ctx, sessionID)
}
