package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "techcorp/internal/errors"
	"techcorp/internal/model"
)

// SessionTTL is the fixed, absolute lifetime of a session. There is no
// sliding renewal.
const SessionTTL = 24 * time.Hour

// Session is the server-side record behind a session cookie. Only the ID is
// ever handed to the client.
type Session struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore is keyed get/put/delete over session records in a durable
// shared store, so any server instance can resolve any live session.
// Get returns (nil, nil) for a missing session; errors mean the store itself
// is unreachable.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// UserSource is the slice of the credential store the session manager needs
// to rebuild an identity at resolution time.
type UserSource interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// SessionManager issues, resolves, and destroys sessions.
type SessionManager struct {
	store SessionStore
	users UserSource
	ttl   time.Duration

	now func() time.Time // overridable in tests
}

// NewSessionManager builds a session manager over the given store and user
// source.
func NewSessionManager(store SessionStore, users UserSource) *SessionManager {
	return &SessionManager{
		store: store,
		users: users,
		ttl:   SessionTTL,
		now:   time.Now,
	}
}

// Create persists a new session for the identity and returns it. The ID is
// 256 bits from crypto/rand; it is the opaque cookie value.
func (m *SessionManager) Create(ctx context.Context, ident Identity) (*Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	now := m.now()
	s := &Session{
		ID:        id,
		UserID:    ident.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Put(ctx, s); err != nil {
		return nil, fmt.Errorf("%w: put session: %w", apperrors.ErrStoreUnavailable, err)
	}
	return s, nil
}

// Resolve looks up a session and rebuilds a fresh identity from the user
// record, so role changes made after login take effect on the next request.
// Missing, expired, and orphaned sessions all resolve to (nil, nil); expired
// ones are reaped on the way out. Only store connectivity failures return an
// error.
func (m *SessionManager) Resolve(ctx context.Context, id string) (*Identity, error) {
	if id == "" {
		return nil, nil
	}

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: get session: %w", apperrors.ErrStoreUnavailable, err)
	}
	if s == nil {
		return nil, nil
	}

	// Inclusive boundary: a session resolved at exactly ExpiresAt is expired.
	if !m.now().Before(s.ExpiresAt) {
		_ = m.store.Delete(ctx, id)
		return nil, nil
	}

	user, err := m.users.FindByID(ctx, s.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// User deleted after login: fail closed and reap the session.
			_ = m.store.Delete(ctx, id)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: find session user: %w", apperrors.ErrStoreUnavailable, err)
	}

	return &Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     ParseRole(user.Role),
	}, nil
}

// Destroy removes the session. Destroying a nonexistent session is not an
// error.
func (m *SessionManager) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: delete session: %w", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

func generateSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
