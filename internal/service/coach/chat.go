package coach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/carbontrack-backend/internal/carbon"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/internal/prompt"
	"github.com/heartmarshall/carbontrack-backend/pkg/ctxutil"
)

// Reply is the coach's answer.
type Reply struct {
	Content string
	// Source is SourceAI or SourceFallback.
	Source string
}

// Chat answers message in the context of the user's footprint. Generator
// failures are never returned; the fallback reply is used instead.
func (s *Service) Chat(ctx context.Context, input ChatInput) (*Reply, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(s.cfg.MaxMessageLength, s.cfg.MaxHistory); err != nil {
		return nil, err
	}

	cc, err := s.loadContext(ctx, userID)
	if err != nil {
		return nil, err
	}

	turns := make([]domain.ChatTurn, 0, len(input.History)+1)
	turns = append(turns, input.History...)
	turns = append(turns, domain.ChatTurn{Role: domain.ChatRoleUser, Content: strings.TrimSpace(input.Message)})

	text, err := s.generate(ctx, domain.Prompt{System: prompt.CoachSystem(cc), Turns: turns})
	if err != nil {
		s.log.WarnContext(ctx, "coach generator failed, using fallback reply",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		return &Reply{Content: FallbackReply, Source: SourceFallback}, nil
	}

	return &Reply{Content: text, Source: SourceAI}, nil
}

// SuggestQuestion proposes one question about the user's highest emission
// category. It returns an empty string when there is no data.
func (s *Service) SuggestQuestion(ctx context.Context) (string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}

	entries, err := s.footprints.ListRecent(ctx, userID, s.cfg.HistoryLimit)
	if err != nil {
		return "", fmt.Errorf("list recent footprints: %w", err)
	}

	perCategory, total := carbon.CategoryTotals(entries)
	highest, ok := carbon.HighestCategory(perCategory)
	if !ok {
		return "", nil
	}

	text, err := s.generate(ctx, prompt.Suggestion(highest, total))
	if err == nil {
		if q := prompt.CleanSuggestion(text); q != "" {
			return q, nil
		}
		err = errors.New("empty suggestion")
	}

	s.log.WarnContext(ctx, "suggestion generator failed, using fallback",
		slog.String("user_id", userID.String()),
		slog.String("error", err.Error()),
	)
	return prompt.FallbackSuggestion(highest), nil
}

func (s *Service) loadContext(ctx context.Context, userID uuid.UUID) (prompt.CoachContext, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return prompt.CoachContext{}, fmt.Errorf("get user: %w", err)
	}

	entries, err := s.footprints.ListRecent(ctx, userID, s.cfg.HistoryLimit)
	if err != nil {
		return prompt.CoachContext{}, fmt.Errorf("list recent footprints: %w", err)
	}

	perCategory, total := carbon.CategoryTotals(entries)
	highest, _ := carbon.HighestCategory(perCategory)

	return prompt.CoachContext{
		UserName:    user.Name,
		CarbonGoal:  user.CarbonGoal,
		PerCategory: perCategory,
		Total:       total,
		Highest:     highest,
		Recent:      entries,
	}, nil
}

func (s *Service) generate(ctx context.Context, p domain.Prompt) (string, error) {
	if s.generator == nil {
		return "", domain.ErrGeneratorUnavailable
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	text, err := s.generator.Generate(ctx, p)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty reply")
	}
	return strings.TrimSpace(text), nil
}
