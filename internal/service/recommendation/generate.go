package recommendation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/carbontrack-backend/internal/carbon"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/internal/prompt"
	"github.com/heartmarshall/carbontrack-backend/pkg/ctxutil"
)

// Generate derives recommendations from the current user's most recent
// footprints and stores them. The generator is tried first; on any failure
// the rule-based selection is used instead. The two are never mixed.
func (s *Service) Generate(ctx context.Context) ([]domain.Recommendation, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	entries, err := s.footprints.ListRecent(ctx, userID, s.cfg.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent footprints: %w", err)
	}
	if len(entries) == 0 {
		return nil, domain.NewValidationError("footprints", "no footprint data available")
	}

	perCategory, total := carbon.CategoryTotals(entries)
	drafts := s.draft(ctx, entries, perCategory, total)
	if limit := s.cfg.MaxGenerated; limit > 0 && len(drafts) > limit {
		drafts = drafts[:limit]
	}

	created := make([]domain.Recommendation, 0, len(drafts))
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, d := range drafts {
			rec, err := s.recs.Create(ctx, s.fromDraft(d, userID))
			if err != nil {
				return fmt.Errorf("create recommendation: %w", err)
			}
			created = append(created, *rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "recommendations generated",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(created)),
		slog.String("source", string(created[0].Source)),
	)

	return created, nil
}

// draft returns generator drafts when they parse, otherwise the rule-based
// selection.
func (s *Service) draft(
	ctx context.Context,
	entries []domain.Footprint,
	perCategory map[domain.Category]float64,
	total float64,
) []domain.RecommendationDraft {
	drafts, err := s.generateDrafts(ctx, entries, perCategory, total)
	if err != nil {
		s.log.WarnContext(ctx, "ai recommendations unavailable, using rules",
			slog.String("error", err.Error()),
		)
		return carbon.Select(perCategory, total)
	}
	return drafts
}

func (s *Service) generateDrafts(
	ctx context.Context,
	entries []domain.Footprint,
	perCategory map[domain.Category]float64,
	total float64,
) ([]domain.RecommendationDraft, error) {
	if s.generator == nil {
		return nil, domain.ErrGeneratorUnavailable
	}

	highest, ok := carbon.HighestCategory(perCategory)
	if !ok {
		highest = domain.CategoryGeneral
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	reply, err := s.generator.Generate(ctx, prompt.Recommendation(perCategory, total, highest, entries))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	drafts, err := prompt.ParseRecommendations(reply)
	if err != nil {
		return nil, fmt.Errorf("parse reply: %w", err)
	}
	return drafts, nil
}
