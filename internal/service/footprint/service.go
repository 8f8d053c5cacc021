package footprint

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type footprintRepo interface {
	Create(ctx context.Context, fp *domain.Footprint) (*domain.Footprint, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Footprint, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Footprint, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.FootprintFilter) ([]domain.Footprint, error)
	Count(ctx context.Context, userID uuid.UUID, filter domain.FootprintFilter) (int, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]domain.Footprint, error)
	Update(ctx context.Context, fp *domain.Footprint) (*domain.Footprint, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service manages footprint entries and their aggregated views.
type Service struct {
	footprints footprintRepo
	users      userRepo
	tx         txManager
	log        *slog.Logger
	now        func() time.Time
}

// NewService creates a new footprint service.
func NewService(
	log *slog.Logger,
	footprints footprintRepo,
	users userRepo,
	tx txManager,
) *Service {
	return &Service{
		footprints: footprints,
		users:      users,
		tx:         tx,
		log:        log.With("service", "footprint"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// checkOwner maps a row owned by someone else to ErrForbidden.
func checkOwner(fp *domain.Footprint, userID uuid.UUID) error {
	if fp.UserID != userID {
		return domain.ErrForbidden
	}
	return nil
}
