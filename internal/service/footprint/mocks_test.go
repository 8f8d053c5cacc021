package footprint

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
	_ footprintRepo = &footprintRepoMock{}
	_ userRepo      = &userRepoMock{}
	_ txManager     = &txManagerMock{}
)

type footprintRepoMock struct {
	CreateFunc       func(ctx context.Context, fp *domain.Footprint) (*domain.Footprint, error)
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Footprint, error)
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Footprint, error)
	ListFunc         func(ctx context.Context, userID uuid.UUID, filter domain.FootprintFilter) ([]domain.Footprint, error)
	CountFunc        func(ctx context.Context, userID uuid.UUID, filter domain.FootprintFilter) (int, error)
	ListAllFunc      func(ctx context.Context, userID uuid.UUID) ([]domain.Footprint, error)
	UpdateFunc       func(ctx context.Context, fp *domain.Footprint) (*domain.Footprint, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error

	mu          sync.Mutex
	createCalls []*domain.Footprint
	updateCalls []*domain.Footprint
	deleteCalls []uuid.UUID
}

func (m *footprintRepoMock) Create(ctx context.Context, fp *domain.Footprint) (*domain.Footprint, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, fp)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, fp)
	}
	return fp, nil
}

func (m *footprintRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Footprint, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *footprintRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Footprint, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *footprintRepoMock) List(ctx context.Context, userID uuid.UUID, filter domain.FootprintFilter) ([]domain.Footprint, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter)
	}
	return nil, nil
}

func (m *footprintRepoMock) Count(ctx context.Context, userID uuid.UUID, filter domain.FootprintFilter) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, userID, filter)
	}
	return 0, nil
}

func (m *footprintRepoMock) ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Footprint, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx, userID)
	}
	return nil, nil
}

func (m *footprintRepoMock) Update(ctx context.Context, fp *domain.Footprint) (*domain.Footprint, error) {
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, fp)
	m.mu.Unlock()
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, fp)
	}
	return fp, nil
}

func (m *footprintRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, id)
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &domain.User{ID: id}, nil
}

// txManagerMock runs fn inline, like a real transaction that always commits.
type txManagerMock struct {
	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}
