package coach

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// FallbackReply is returned whenever the generator cannot answer.
const FallbackReply = "I can answer any questions you have about reducing your carbon footprint or any other topic. What would you like to know?"

// Reply sources.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

type footprintRepo interface {
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Footprint, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type textGenerator interface {
	Generate(ctx context.Context, prompt domain.Prompt) (string, error)
}

// Config tunes the coach.
type Config struct {
	MaxHistory       int
	MaxMessageLength int
	// HistoryLimit is how many recent footprints feed the coach context.
	HistoryLimit int
	Timeout      time.Duration
}

// Service answers questions about the user's footprint.
type Service struct {
	footprints footprintRepo
	users      userRepo
	generator  textGenerator
	cfg        Config
	log        *slog.Logger
}

// NewService creates a new coach service. generator may be nil.
func NewService(
	log *slog.Logger,
	footprints footprintRepo,
	users userRepo,
	generator textGenerator,
	cfg Config,
) *Service {
	return &Service{
		footprints: footprints,
		users:      users,
		generator:  generator,
		cfg:        cfg,
		log:        log.With("service", "coach"),
	}
}
