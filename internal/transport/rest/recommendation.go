package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/internal/service/recommendation"
)

type recommendationService interface {
	List(ctx context.Context, input recommendation.ListInput) ([]domain.Recommendation, error)
	Create(ctx context.Context, input recommendation.CreateInput) (*domain.Recommendation, error)
	Update(ctx context.Context, id uuid.UUID, input recommendation.UpdateInput) (*domain.Recommendation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Generate(ctx context.Context) ([]domain.Recommendation, error)
}

// RecommendationHandler serves /api/recommendations.
type RecommendationHandler struct {
	svc recommendationService
	log *slog.Logger
}

// NewRecommendationHandler creates a RecommendationHandler.
func NewRecommendationHandler(svc recommendationService, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{svc: svc, log: logger.With("handler", "recommendation")}
}

type createRecommendationRequest struct {
	Category        string   `json:"category"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	PotentialImpact *float64 `json:"potentialImpact"`
	Difficulty      string   `json:"difficulty"`
	Source          string   `json:"source"`
}

type updateRecommendationRequest struct {
	Category        *string  `json:"category"`
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	PotentialImpact *float64 `json:"potentialImpact"`
	Difficulty      *string  `json:"difficulty"`
	IsImplemented   *bool    `json:"isImplemented"`
}

// List handles GET /api/recommendations?category=&implemented=.
func (h *RecommendationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := newQueryParams(r)
	input := recommendation.ListInput{
		Category:    q.Category("category"),
		Implemented: q.Bool("implemented"),
	}
	if err := q.Err(); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	recs, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecommendationList(recs))
}

// Create handles POST /api/recommendations.
func (h *RecommendationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRecommendationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleBodyError(h.log, w, r, err)
		return
	}

	rec, err := h.svc.Create(r.Context(), recommendation.CreateInput{
		Category:        domain.Category(req.Category),
		Title:           req.Title,
		Description:     req.Description,
		PotentialImpact: req.PotentialImpact,
		Difficulty:      domain.Difficulty(req.Difficulty),
		Source:          domain.RecommendationSource(req.Source),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecommendationResponse(rec))
}

// Update handles PUT /api/recommendations/{id}.
func (h *RecommendationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateRecommendationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleBodyError(h.log, w, r, err)
		return
	}

	input := recommendation.UpdateInput{
		Title:           req.Title,
		Description:     req.Description,
		PotentialImpact: req.PotentialImpact,
		IsImplemented:   req.IsImplemented,
	}
	if req.Category != nil {
		c := domain.Category(*req.Category)
		input.Category = &c
	}
	if req.Difficulty != nil {
		d := domain.Difficulty(*req.Difficulty)
		input.Difficulty = &d
	}

	rec, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecommendationResponse(rec))
}

// Delete handles DELETE /api/recommendations/{id}.
func (h *RecommendationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{ID: id.String()})
}

// Generate handles POST /api/recommendations/generate.
func (h *RecommendationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.Generate(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecommendationList(recs))
}
