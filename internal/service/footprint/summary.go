package footprint

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/carbontrack-backend/internal/carbon"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/pkg/ctxutil"
)

// Insights is the summary of a user's footprint expressed in everyday terms.
type Insights struct {
	Summary     domain.Summary
	Equivalency carbon.Equivalency
	// Goal is nil when the user has not set a carbon goal.
	Goal *carbon.GoalProgress
	// HighestCategory is nil when there are no emissions.
	HighestCategory *domain.Category
}

// Summary aggregates all entries of the current user.
func (s *Service) Summary(ctx context.Context) (*domain.Summary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	entries, err := s.footprints.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list footprints: %w", err)
	}

	summary := carbon.Summarize(entries, s.now())
	return &summary, nil
}

// Insights loads the profile and the entries concurrently and derives
// equivalencies, goal progress and the dominant category.
func (s *Service) Insights(ctx context.Context) (*Insights, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var (
		user    *domain.User
		entries []domain.Footprint
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.users.GetByID(gctx, userID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		entries, err = s.footprints.ListAll(gctx, userID)
		if err != nil {
			return fmt.Errorf("list footprints: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := carbon.Summarize(entries, s.now())
	out := &Insights{
		Summary:     summary,
		Equivalency: carbon.Equivalents(summary.Total),
	}

	if progress, ok := carbon.ProgressTowardGoal(summary.Total, user.CarbonGoal); ok {
		out.Goal = &progress
	}

	perCategory, _ := carbon.CategoryTotals(entries)
	if highest, ok := carbon.HighestCategory(perCategory); ok {
		out.HighestCategory = &highest
	}

	return out, nil
}
