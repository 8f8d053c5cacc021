package recommendation

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
	_ recommendationRepo = &recommendationRepoMock{}
	_ footprintRepo      = &footprintRepoMock{}
	_ txManager          = &txManagerMock{}
	_ textGenerator      = &textGeneratorMock{}
)

type recommendationRepoMock struct {
	CreateFunc       func(ctx context.Context, rec *domain.Recommendation) (*domain.Recommendation, error)
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error)
	ListFunc         func(ctx context.Context, userID uuid.UUID, filter domain.RecommendationFilter) ([]domain.Recommendation, error)
	UpdateFunc       func(ctx context.Context, rec *domain.Recommendation) (*domain.Recommendation, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error

	mu          sync.Mutex
	createCalls []*domain.Recommendation
	deleteCalls []uuid.UUID
}

func (m *recommendationRepoMock) Create(ctx context.Context, rec *domain.Recommendation) (*domain.Recommendation, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, rec)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rec)
	}
	return rec, nil
}

func (m *recommendationRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error) {
	if m.GetForUpdateFunc != nil {
		return m.GetForUpdateFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *recommendationRepoMock) List(ctx context.Context, userID uuid.UUID, filter domain.RecommendationFilter) ([]domain.Recommendation, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter)
	}
	return nil, nil
}

func (m *recommendationRepoMock) Update(ctx context.Context, rec *domain.Recommendation) (*domain.Recommendation, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, rec)
	}
	return rec, nil
}

func (m *recommendationRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, id)
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type footprintRepoMock struct {
	ListRecentFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Footprint, error)
}

func (m *footprintRepoMock) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Footprint, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, userID, limit)
	}
	return nil, nil
}

// txManagerMock runs fn inline and reports fn's error like a rollback would.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type textGeneratorMock struct {
	GenerateFunc func(ctx context.Context, prompt domain.Prompt) (string, error)

	mu      sync.Mutex
	prompts []domain.Prompt
}

func (m *textGeneratorMock) Generate(ctx context.Context, prompt domain.Prompt) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "", domain.ErrGeneratorUnavailable
}
