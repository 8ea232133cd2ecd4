package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"techcorp/internal/auth"
	apperrors "techcorp/internal/errors"
	"techcorp/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRoleAndHash(ctx context.Context, username, role, passwordHash string) error {
	args := m.Called(ctx, username, role, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// memSessionStore is an in-memory auth.SessionStore for tests.
type memSessionStore struct {
	sessions map[string]auth.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]auth.Session)}
}

func (s *memSessionStore) Get(ctx context.Context, id string) (*auth.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := sess
	return &copied, nil
}

func (s *memSessionStore) Put(ctx context.Context, sess *auth.Session) error {
	s.sessions[sess.ID] = *sess
	return nil
}

func (s *memSessionStore) Delete(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func newTestAuthService(repo *MockUserRepository) (AuthService, *memSessionStore) {
	store := newMemSessionStore()
	hasher := auth.NewHasher("sha256")
	sessions := auth.NewSessionManager(store, repo)
	return NewAuthService(repo, hasher, sessions), store
}

func sha256Digest(t *testing.T, plaintext string) string {
	t.Helper()
	digest, err := auth.SHA256Hasher{}.Hash(plaintext)
	assert.NoError(t, err)
	return digest
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "alice@x.com",
			password: "pw123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsernameOrEmail", mock.Anything, "alice", "alice@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "duplicate username",
			username: "alice",
			email:    "other@x.com",
			password: "pw123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsernameOrEmail", mock.Anything, "alice", "other@x.com").Return(&model.User{
					Username: "alice",
					Email:    "alice@x.com",
				}, nil)
			},
			expectedError: apperrors.ErrDuplicateUsername,
		},
		{
			name:     "duplicate email",
			username: "bob",
			email:    "alice@x.com",
			password: "pw123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsernameOrEmail", mock.Anything, "bob", "alice@x.com").Return(&model.User{
					Username: "alice",
					Email:    "alice@x.com",
				}, nil)
			},
			expectedError: apperrors.ErrDuplicateEmail,
		},
		{
			name:          "missing fields fail before any store access",
			username:      "",
			email:         "alice@x.com",
			password:      "pw123",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc, _ := newTestAuthService(mockRepo)
			user, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, string(auth.RoleRegistered), user.Role)
				assert.True(t, auth.SHA256Hasher{}.Verify(tt.password, user.PasswordHash))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(t *testing.T, m *MockUserRepository)
		expectedError error
		expectedRole  string
	}{
		{
			name:     "successful login",
			username: "testuser",
			password: "hello",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "testuser").Return(&model.User{
					ID:           2,
					Username:     "testuser",
					PasswordHash: sha256Digest(t, "hello"),
					Role:         "registered",
				}, nil)
			},
			expectedRole: "registered",
		},
		{
			name:     "seeded admin login carries admin role",
			username: "admin",
			password: "admin123",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "admin").Return(&model.User{
					ID:           1,
					Username:     "admin",
					PasswordHash: sha256Digest(t, "admin123"),
					Role:         "admin",
				}, nil)
			},
			expectedRole: "admin",
		},
		{
			name:     "unknown username",
			username: "nobody",
			password: "pw123",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "testuser",
			password: "wrong",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "testuser").Return(&model.User{
					ID:           2,
					Username:     "testuser",
					PasswordHash: sha256Digest(t, "hello"),
					Role:         "registered",
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(t, mockRepo)

			svc, _ := newTestAuthService(mockRepo)
			session, user, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, session)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, session)
				assert.NotEmpty(t, session.ID)
				assert.NotNil(t, user)
				assert.Equal(t, tt.expectedRole, user.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("FindByUsername", mock.Anything, "testuser").Return(&model.User{
		ID:           2,
		Username:     "testuser",
		PasswordHash: sha256Digest(t, "hello"),
		Role:         "registered",
	}, nil)

	svc, _ := newTestAuthService(mockRepo)

	_, _, errUnknown := svc.Login(context.Background(), "nobody", "pw123")
	_, _, errWrongPw := svc.Login(context.Background(), "testuser", "wrong")

	// Same error value either way: callers cannot tell which failed.
	assert.Equal(t, errUnknown, errWrongPw)
	assert.Equal(t, apperrors.ErrInvalidCredentials, errUnknown)
}

func TestAuthService_Logout(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "testuser").Return(&model.User{
		ID:           2,
		Username:     "testuser",
		PasswordHash: sha256Digest(t, "hello"),
		Role:         "registered",
	}, nil)

	svc, store := newTestAuthService(mockRepo)

	session, _, err := svc.Login(context.Background(), "testuser", "hello")
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(context.Background(), session.ID))
	assert.Empty(t, store.sessions)

	// second logout is a no-op, not an error
	assert.NoError(t, svc.Logout(context.Background(), session.ID))
}
