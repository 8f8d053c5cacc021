package recommendation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/pkg/ctxutil"
)

// List returns the current user's recommendations, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Recommendation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	recs, err := s.recs.List(ctx, userID, domain.RecommendationFilter{
		Category:    input.Category,
		Implemented: input.Implemented,
	})
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	return recs, nil
}

// Create stores a recommendation authored by the current user.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Recommendation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	draft := domain.RecommendationDraft{
		Category:    input.Category,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Difficulty:  domain.DifficultyMedium,
		Source:      domain.RecommendationSourceSystem,
	}
	if input.PotentialImpact != nil {
		draft.PotentialImpact = *input.PotentialImpact
	}
	if input.Difficulty != "" {
		draft.Difficulty = input.Difficulty
	}
	if input.Source != "" {
		draft.Source = input.Source
	}

	created, err := s.recs.Create(ctx, s.fromDraft(draft, userID))
	if err != nil {
		return nil, fmt.Errorf("create recommendation: %w", err)
	}

	s.log.InfoContext(ctx, "recommendation created",
		slog.String("user_id", userID.String()),
		slog.String("recommendation_id", created.ID.String()),
		slog.String("category", created.Category.String()),
	)

	return created, nil
}

// Update applies input to a recommendation owned by the current user.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.Recommendation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Recommendation
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		rec, err := s.recs.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("lock recommendation: %w", err)
		}
		if err := checkOwner(rec, userID); err != nil {
			return err
		}

		applyUpdate(rec, input)
		rec.UpdatedAt = s.now()

		updated, err = s.recs.Update(ctx, rec)
		if err != nil {
			return fmt.Errorf("update recommendation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "recommendation updated",
		slog.String("user_id", userID.String()),
		slog.String("recommendation_id", id.String()),
		slog.Bool("is_implemented", updated.IsImplemented),
	)

	return updated, nil
}

func applyUpdate(rec *domain.Recommendation, input UpdateInput) {
	if input.Category != nil {
		rec.Category = *input.Category
	}
	if input.Title != nil {
		rec.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		rec.Description = strings.TrimSpace(*input.Description)
	}
	if input.PotentialImpact != nil {
		rec.PotentialImpact = *input.PotentialImpact
	}
	if input.Difficulty != nil {
		rec.Difficulty = *input.Difficulty
	}
	if input.IsImplemented != nil {
		rec.IsImplemented = *input.IsImplemented
	}
}

// Delete removes a recommendation owned by the current user.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		rec, err := s.recs.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("lock recommendation: %w", err)
		}
		if err := checkOwner(rec, userID); err != nil {
			return err
		}
		if err := s.recs.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete recommendation: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "recommendation deleted",
		slog.String("user_id", userID.String()),
		slog.String("recommendation_id", id.String()),
	)

	return nil
}

func (s *Service) fromDraft(d domain.RecommendationDraft, userID uuid.UUID) *domain.Recommendation {
	now := s.now()
	rec := d.ToRecommendation(userID)
	rec.ID = uuid.New()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return rec
}
