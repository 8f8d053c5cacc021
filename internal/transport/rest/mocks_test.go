package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/internal/service/auth"
	"github.com/heartmarshall/carbontrack-backend/internal/service/coach"
	"github.com/heartmarshall/carbontrack-backend/internal/service/footprint"
	"github.com/heartmarshall/carbontrack-backend/internal/service/recommendation"
	"github.com/heartmarshall/carbontrack-backend/internal/service/user"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

var (
	_ authService           = &authServiceMock{}
	_ userService           = &userServiceMock{}
	_ footprintService      = &footprintServiceMock{}
	_ recommendationService = &recommendationServiceMock{}
	_ coachService          = &coachServiceMock{}
	_ tokenValidator        = &tokenValidatorMock{}
)

type authServiceMock struct {
	RegisterFunc          func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	LoginWithPasswordFunc func(ctx context.Context, input auth.LoginPasswordInput) (*auth.AuthResult, error)
	RefreshFunc           func(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error)
	LogoutFunc            func(ctx context.Context) error
}

func (m *authServiceMock) Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *authServiceMock) LoginWithPassword(ctx context.Context, input auth.LoginPasswordInput) (*auth.AuthResult, error) {
	return m.LoginWithPasswordFunc(ctx, input)
}

func (m *authServiceMock) Refresh(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error) {
	return m.RefreshFunc(ctx, input)
}

func (m *authServiceMock) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

type userServiceMock struct {
	GetProfileFunc    func(ctx context.Context) (*domain.User, error)
	UpdateProfileFunc func(ctx context.Context, input user.UpdateProfileInput) (*domain.User, error)
}

func (m *userServiceMock) GetProfile(ctx context.Context) (*domain.User, error) {
	return m.GetProfileFunc(ctx)
}

func (m *userServiceMock) UpdateProfile(ctx context.Context, input user.UpdateProfileInput) (*domain.User, error) {
	return m.UpdateProfileFunc(ctx, input)
}

type footprintServiceMock struct {
	CreateFunc   func(ctx context.Context, input footprint.CreateInput) (*domain.Footprint, error)
	GetFunc      func(ctx context.Context, id uuid.UUID) (*domain.Footprint, error)
	ListFunc     func(ctx context.Context, input footprint.ListInput) (*footprint.ListResult, error)
	UpdateFunc   func(ctx context.Context, id uuid.UUID, input footprint.UpdateInput) (*domain.Footprint, error)
	DeleteFunc   func(ctx context.Context, id uuid.UUID) error
	SummaryFunc  func(ctx context.Context) (*domain.Summary, error)
	InsightsFunc func(ctx context.Context) (*footprint.Insights, error)
	EstimateFunc func(input footprint.EstimateInput) (float64, error)
}

func (m *footprintServiceMock) Create(ctx context.Context, input footprint.CreateInput) (*domain.Footprint, error) {
	return m.CreateFunc(ctx, input)
}

func (m *footprintServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Footprint, error) {
	return m.GetFunc(ctx, id)
}

func (m *footprintServiceMock) List(ctx context.Context, input footprint.ListInput) (*footprint.ListResult, error) {
	return m.ListFunc(ctx, input)
}

func (m *footprintServiceMock) Update(ctx context.Context, id uuid.UUID, input footprint.UpdateInput) (*domain.Footprint, error) {
	return m.UpdateFunc(ctx, id, input)
}

func (m *footprintServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *footprintServiceMock) Summary(ctx context.Context) (*domain.Summary, error) {
	return m.SummaryFunc(ctx)
}

func (m *footprintServiceMock) Insights(ctx context.Context) (*footprint.Insights, error) {
	return m.InsightsFunc(ctx)
}

func (m *footprintServiceMock) Estimate(input footprint.EstimateInput) (float64, error) {
	return m.EstimateFunc(input)
}

type recommendationServiceMock struct {
	ListFunc     func(ctx context.Context, input recommendation.ListInput) ([]domain.Recommendation, error)
	CreateFunc   func(ctx context.Context, input recommendation.CreateInput) (*domain.Recommendation, error)
	UpdateFunc   func(ctx context.Context, id uuid.UUID, input recommendation.UpdateInput) (*domain.Recommendation, error)
	DeleteFunc   func(ctx context.Context, id uuid.UUID) error
	GenerateFunc func(ctx context.Context) ([]domain.Recommendation, error)
}

func (m *recommendationServiceMock) List(ctx context.Context, input recommendation.ListInput) ([]domain.Recommendation, error) {
	return m.ListFunc(ctx, input)
}

func (m *recommendationServiceMock) Create(ctx context.Context, input recommendation.CreateInput) (*domain.Recommendation, error) {
	return m.CreateFunc(ctx, input)
}

func (m *recommendationServiceMock) Update(ctx context.Context, id uuid.UUID, input recommendation.UpdateInput) (*domain.Recommendation, error) {
	return m.UpdateFunc(ctx, id, input)
}

func (m *recommendationServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

func (m *recommendationServiceMock) Generate(ctx context.Context) ([]domain.Recommendation, error) {
	return m.GenerateFunc(ctx)
}

type coachServiceMock struct {
	ChatFunc            func(ctx context.Context, input coach.ChatInput) (*coach.Reply, error)
	SuggestQuestionFunc func(ctx context.Context) (string, error)
}

func (m *coachServiceMock) Chat(ctx context.Context, input coach.ChatInput) (*coach.Reply, error) {
	return m.ChatFunc(ctx, input)
}

func (m *coachServiceMock) SuggestQuestion(ctx context.Context) (string, error) {
	return m.SuggestQuestionFunc(ctx)
}

type tokenValidatorMock struct {
	ValidateTokenFunc func(ctx context.Context, token string) (uuid.UUID, string, error)
}

func (m *tokenValidatorMock) ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error) {
	return m.ValidateTokenFunc(ctx, token)
}

type dbPingerMock struct {
	err error
}

func (m *dbPingerMock) Ping(context.Context) error {
	return m.err
}
