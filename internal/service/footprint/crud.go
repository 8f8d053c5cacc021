package footprint

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/carbontrack-backend/internal/carbon"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/pkg/ctxutil"
)

// ListResult is one page of footprint entries.
type ListResult struct {
	Items []domain.Footprint
	Total int
}

// Create logs a footprint entry for the current user. The emission is
// estimated when the caller does not supply one.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Footprint, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	fp := &domain.Footprint{
		ID:        uuid.New(),
		UserID:    userID,
		Category:  input.Category,
		Activity:  strings.TrimSpace(input.Activity),
		Date:      now,
		Unit:      domain.DefaultEmissionUnit,
		Details:   map[string]any{},
		Source:    domain.FootprintSourceManual,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Date != nil {
		fp.Date = input.Date.UTC()
	}
	if unit := strings.TrimSpace(input.Unit); unit != "" {
		fp.Unit = unit
	}
	if input.Details != nil {
		fp.Details = maps.Clone(input.Details)
	}
	if input.Source != "" {
		fp.Source = input.Source
	}

	estimated := input.CarbonEmission == nil
	if estimated {
		fp.CarbonEmission = carbon.Estimate(fp.Category, fp.Details)
	} else {
		fp.CarbonEmission = *input.CarbonEmission
	}

	created, err := s.footprints.Create(ctx, fp)
	if err != nil {
		return nil, fmt.Errorf("create footprint: %w", err)
	}

	s.log.InfoContext(ctx, "footprint created",
		slog.String("user_id", userID.String()),
		slog.String("footprint_id", created.ID.String()),
		slog.String("category", created.Category.String()),
		slog.Float64("carbon_emission", created.CarbonEmission),
		slog.Bool("estimated", estimated),
	)

	return created, nil
}

// Get returns one of the current user's footprint entries.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Footprint, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	fp, err := s.footprints.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get footprint: %w", err)
	}
	if err := checkOwner(fp, userID); err != nil {
		return nil, err
	}

	return fp, nil
}

// List returns a page of the current user's entries, newest date first.
func (s *Service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	filter := domain.FootprintFilter{
		Category: input.Category,
		From:     input.From,
		To:       input.To,
		Limit:    limit,
		Offset:   input.Offset,
	}

	items, err := s.footprints.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list footprints: %w", err)
	}

	total, err := s.footprints.Count(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("count footprints: %w", err)
	}

	return &ListResult{Items: items, Total: total}, nil
}

// Update applies input to an entry owned by the current user. The row is
// locked for the duration of the change. When the emission is not supplied
// but the category or details change, it is re-estimated.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*domain.Footprint, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		updated     *domain.Footprint
		reestimated bool
	)
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		fp, err := s.footprints.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("lock footprint: %w", err)
		}
		if err := checkOwner(fp, userID); err != nil {
			return err
		}

		reestimated = applyUpdate(fp, input)
		fp.UpdatedAt = s.now()

		updated, err = s.footprints.Update(ctx, fp)
		if err != nil {
			return fmt.Errorf("update footprint: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "footprint updated",
		slog.String("user_id", userID.String()),
		slog.String("footprint_id", id.String()),
		slog.Bool("reestimated", reestimated),
	)

	return updated, nil
}

// applyUpdate merges input into fp and reports whether the emission was
// re-estimated.
func applyUpdate(fp *domain.Footprint, input UpdateInput) bool {
	estimateInputsChanged := false

	if input.Category != nil && *input.Category != fp.Category {
		fp.Category = *input.Category
		estimateInputsChanged = true
	}
	if input.Details != nil {
		fp.Details = maps.Clone(input.Details)
		estimateInputsChanged = true
	}
	if input.Activity != nil {
		fp.Activity = strings.TrimSpace(*input.Activity)
	}
	if input.Date != nil {
		fp.Date = input.Date.UTC()
	}
	if input.Unit != nil {
		if unit := strings.TrimSpace(*input.Unit); unit != "" {
			fp.Unit = unit
		}
	}
	if input.Source != nil {
		fp.Source = *input.Source
	}

	if input.CarbonEmission != nil {
		fp.CarbonEmission = *input.CarbonEmission
		return false
	}
	if estimateInputsChanged {
		fp.CarbonEmission = carbon.Estimate(fp.Category, fp.Details)
		return true
	}
	return false
}

// Delete removes an entry owned by the current user.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		fp, err := s.footprints.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("lock footprint: %w", err)
		}
		if err := checkOwner(fp, userID); err != nil {
			return err
		}
		if err := s.footprints.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete footprint: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "footprint deleted",
		slog.String("user_id", userID.String()),
		slog.String("footprint_id", id.String()),
	)

	return nil
}
