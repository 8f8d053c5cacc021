package recommendation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

type recommendationRepo interface {
	Create(ctx context.Context, rec *domain.Recommendation) (*domain.Recommendation, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.RecommendationFilter) ([]domain.Recommendation, error)
	Update(ctx context.Context, rec *domain.Recommendation) (*domain.Recommendation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type footprintRepo interface {
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Footprint, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type textGenerator interface {
	Generate(ctx context.Context, prompt domain.Prompt) (string, error)
}

// Config tunes recommendation generation.
type Config struct {
	// HistoryLimit is how many recent footprints feed generation.
	HistoryLimit int
	// MaxGenerated caps the number of recommendations created per run.
	MaxGenerated int
	// Timeout bounds a single generator call.
	Timeout time.Duration
}

// Service manages recommendations and generates new ones from footprints.
type Service struct {
	recs       recommendationRepo
	footprints footprintRepo
	tx         txManager
	generator  textGenerator
	cfg        Config
	log        *slog.Logger
	now        func() time.Time
}

// NewService creates a new recommendation service. generator may be nil, in
// which case generation is rule-based only.
func NewService(
	log *slog.Logger,
	recs recommendationRepo,
	footprints footprintRepo,
	tx txManager,
	generator textGenerator,
	cfg Config,
) *Service {
	return &Service{
		recs:       recs,
		footprints: footprints,
		tx:         tx,
		generator:  generator,
		cfg:        cfg,
		log:        log.With("service", "recommendation"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func checkOwner(rec *domain.Recommendation, userID uuid.UUID) error {
	if rec.UserID != userID {
		return domain.ErrForbidden
	}
	return nil
}
