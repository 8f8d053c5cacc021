package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

var (
	_ userRepo       = &userRepoMock{}
	_ tokenRepo      = &tokenRepoMock{}
	_ authMethodRepo = &authMethodRepoMock{}
	_ txManager      = &txManagerMock{}
	_ jwtManager     = &jwtManagerMock{}
)

type userRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc     func(ctx context.Context, user *domain.User) (*domain.User, error)

	mu          sync.Mutex
	createCalls []*domain.User
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, user)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return user, nil
}

type tokenRepoMock struct {
	CreateFunc          func(ctx context.Context, token *domain.RefreshToken) error
	GetByHashFunc       func(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByIDFunc      func(ctx context.Context, id uuid.UUID) error
	RevokeAllByUserFunc func(ctx context.Context, userID uuid.UUID) error
	DeleteExpiredFunc   func(ctx context.Context) (int, error)

	mu           sync.Mutex
	createCalls  []*domain.RefreshToken
	revokeCalls  []uuid.UUID
	revokeAllFor []uuid.UUID
}

func (m *tokenRepoMock) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, token)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	return nil
}

func (m *tokenRepoMock) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	if m.GetByHashFunc != nil {
		return m.GetByHashFunc(ctx, tokenHash)
	}
	return nil, domain.ErrNotFound
}

func (m *tokenRepoMock) RevokeByID(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.revokeCalls = append(m.revokeCalls, id)
	m.mu.Unlock()
	if m.RevokeByIDFunc != nil {
		return m.RevokeByIDFunc(ctx, id)
	}
	return nil
}

func (m *tokenRepoMock) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	m.revokeAllFor = append(m.revokeAllFor, userID)
	m.mu.Unlock()
	if m.RevokeAllByUserFunc != nil {
		return m.RevokeAllByUserFunc(ctx, userID)
	}
	return nil
}

func (m *tokenRepoMock) DeleteExpired(ctx context.Context) (int, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx)
	}
	return 0, nil
}

type authMethodRepoMock struct {
	GetByUserAndMethodFunc func(ctx context.Context, userID uuid.UUID, method domain.AuthMethodType) (*domain.AuthMethod, error)
	CreateFunc             func(ctx context.Context, am *domain.AuthMethod) (*domain.AuthMethod, error)

	mu          sync.Mutex
	createCalls []*domain.AuthMethod
}

func (m *authMethodRepoMock) GetByUserAndMethod(ctx context.Context, userID uuid.UUID, method domain.AuthMethodType) (*domain.AuthMethod, error) {
	if m.GetByUserAndMethodFunc != nil {
		return m.GetByUserAndMethodFunc(ctx, userID, method)
	}
	return nil, domain.ErrNotFound
}

func (m *authMethodRepoMock) Create(ctx context.Context, am *domain.AuthMethod) (*domain.AuthMethod, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, am)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, am)
	}
	return am, nil
}

type txManagerMock struct {
	mu    sync.Mutex
	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return fn(ctx)
}

type jwtManagerMock struct {
	GenerateAccessTokenFunc  func(userID uuid.UUID, role string) (string, error)
	ValidateAccessTokenFunc  func(token string) (uuid.UUID, string, error)
	GenerateRefreshTokenFunc func() (string, string, error)
}

func (m *jwtManagerMock) GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, role)
	}
	return "access-" + userID.String(), nil
}

func (m *jwtManagerMock) ValidateAccessToken(token string) (uuid.UUID, string, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return uuid.Nil, "", domain.ErrUnauthorized
}

func (m *jwtManagerMock) GenerateRefreshToken() (string, string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc()
	}
	return "raw-refresh", "hashed-refresh", nil
}
