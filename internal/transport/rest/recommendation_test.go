package rest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/internal/service/recommendation"
)

func sampleRecommendation(source domain.RecommendationSource) domain.Recommendation {
	return domain.Recommendation{
		ID:              uuid.New(),
		Category:        domain.CategoryTransportation,
		Title:           "Cycle to work",
		Description:     "Swap short car trips for the bike.",
		PotentialImpact: 12,
		Difficulty:      domain.DifficultyMedium,
		Source:          source,
	}
}

func TestRecommendationHandler_List(t *testing.T) {
	t.Parallel()

	var got recommendation.ListInput
	h := NewRecommendationHandler(&recommendationServiceMock{
		ListFunc: func(_ context.Context, in recommendation.ListInput) ([]domain.Recommendation, error) {
			got = in
			return []domain.Recommendation{sampleRecommendation(domain.RecommendationSourceSystem)}, nil
		},
	}, discardLogger())

	rec := serve(h.List, newRequest(http.MethodGet, "/api/recommendations?category=energy&implemented=false", "", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Category)
	assert.Equal(t, domain.CategoryEnergy, *got.Category)
	require.NotNil(t, got.Implemented)
	assert.False(t, *got.Implemented)

	resp := decodeBody[[]recommendationResponse](t, rec)
	require.Len(t, resp, 1)
	assert.Equal(t, "system", resp[0].Source)
	assert.Equal(t, "medium", resp[0].Difficulty)
}

func TestRecommendationHandler_List_EmptyIsArray(t *testing.T) {
	t.Parallel()

	h := NewRecommendationHandler(&recommendationServiceMock{
		ListFunc: func(context.Context, recommendation.ListInput) ([]domain.Recommendation, error) {
			return nil, nil
		},
	}, discardLogger())

	rec := serve(h.List, newRequest(http.MethodGet, "/api/recommendations", "", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRecommendationHandler_List_BadImplementedFlag(t *testing.T) {
	t.Parallel()

	h := NewRecommendationHandler(&recommendationServiceMock{}, discardLogger())

	rec := serve(h.List, newRequest(http.MethodGet, "/api/recommendations?implemented=maybe", "", uuid.New()))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody[errorResponse](t, rec)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "implemented", resp.Fields[0].Field)
}

func TestRecommendationHandler_Create(t *testing.T) {
	t.Parallel()

	var got recommendation.CreateInput
	h := NewRecommendationHandler(&recommendationServiceMock{
		CreateFunc: func(_ context.Context, in recommendation.CreateInput) (*domain.Recommendation, error) {
			got = in
			r := sampleRecommendation(domain.RecommendationSourceCommunity)
			return &r, nil
		},
	}, discardLogger())

	rec := serve(h.Create, newRequest(http.MethodPost, "/api/recommendations",
		`{"category":"transportation","title":"Cycle to work","description":"Bike","potentialImpact":12,"difficulty":"medium","source":"community"}`,
		uuid.New()))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.DifficultyMedium, got.Difficulty)
	assert.Equal(t, domain.RecommendationSourceCommunity, got.Source)
	require.NotNil(t, got.PotentialImpact)
	assert.InDelta(t, 12, *got.PotentialImpact, 1e-9)
}

func TestRecommendationHandler_Update(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	var got recommendation.UpdateInput
	h := NewRecommendationHandler(&recommendationServiceMock{
		UpdateFunc: func(_ context.Context, gotID uuid.UUID, in recommendation.UpdateInput) (*domain.Recommendation, error) {
			assert.Equal(t, id, gotID)
			got = in
			r := sampleRecommendation(domain.RecommendationSourceAI)
			r.IsImplemented = true
			return &r, nil
		},
	}, discardLogger())

	req := newRequest(http.MethodPut, "/api/recommendations/"+id.String(), `{"isImplemented":true,"difficulty":"easy"}`, uuid.New())
	req.SetPathValue("id", id.String())
	rec := serve(h.Update, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.IsImplemented)
	assert.True(t, *got.IsImplemented)
	require.NotNil(t, got.Difficulty)
	assert.Equal(t, domain.DifficultyEasy, *got.Difficulty)
	assert.Nil(t, got.Category)
	assert.True(t, decodeBody[recommendationResponse](t, rec).IsImplemented)
}

func TestRecommendationHandler_Update_Forbidden(t *testing.T) {
	t.Parallel()

	h := NewRecommendationHandler(&recommendationServiceMock{
		UpdateFunc: func(context.Context, uuid.UUID, recommendation.UpdateInput) (*domain.Recommendation, error) {
			return nil, domain.ErrForbidden
		},
	}, discardLogger())

	id := uuid.NewString()
	req := newRequest(http.MethodPut, "/api/recommendations/"+id, `{"title":"x"}`, uuid.New())
	req.SetPathValue("id", id)

	assert.Equal(t, http.StatusForbidden, serve(h.Update, req).Code)
}

func TestRecommendationHandler_Delete(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	h := NewRecommendationHandler(&recommendationServiceMock{
		DeleteFunc: func(context.Context, uuid.UUID) error { return nil },
	}, discardLogger())

	req := newRequest(http.MethodDelete, "/api/recommendations/"+id.String(), "", uuid.New())
	req.SetPathValue("id", id.String())
	rec := serve(h.Delete, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+id.String()+`"}`, rec.Body.String())
}

func TestRecommendationHandler_Generate(t *testing.T) {
	t.Parallel()

	h := NewRecommendationHandler(&recommendationServiceMock{
		GenerateFunc: func(context.Context) ([]domain.Recommendation, error) {
			return []domain.Recommendation{
				sampleRecommendation(domain.RecommendationSourceAI),
				sampleRecommendation(domain.RecommendationSourceAI),
			}, nil
		},
	}, discardLogger())

	rec := serve(h.Generate, newRequest(http.MethodPost, "/api/recommendations/generate", "", uuid.New()))

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody[[]recommendationResponse](t, rec)
	require.Len(t, resp, 2)
	for _, r := range resp {
		assert.Equal(t, "ai", r.Source)
	}
}

func TestRecommendationHandler_Generate_StoreFailure(t *testing.T) {
	t.Parallel()

	h := NewRecommendationHandler(&recommendationServiceMock{
		GenerateFunc: func(context.Context) ([]domain.Recommendation, error) {
			return nil, errors.New("insert recommendations: connection reset")
		},
	}, discardLogger())

	rec := serve(h.Generate, newRequest(http.MethodPost, "/api/recommendations/generate", "", uuid.New()))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}
