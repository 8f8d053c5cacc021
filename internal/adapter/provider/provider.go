// Package provider selects the text generator backing the AI features.
package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/carbontrack-backend/internal/adapter/provider/vertex"
	"github.com/heartmarshall/carbontrack-backend/internal/config"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt domain.Prompt) (string, error)
}

// Disabled is used when no provider is configured. Every call fails with
// domain.ErrGeneratorUnavailable so callers take their fallback path.
type Disabled struct{}

// Generate always returns domain.ErrGeneratorUnavailable.
func (Disabled) Generate(context.Context, domain.Prompt) (string, error) {
	return "", domain.ErrGeneratorUnavailable
}

// New builds the generator named by cfg.Provider. The returned close function
// is never nil.
func New(ctx context.Context, cfg config.AIConfig, logger *slog.Logger) (Generator, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Provider {
	case config.AIProviderNone, "":
		logger.Info("ai provider disabled, rule-based fallbacks only")
		return Disabled{}, noop, nil

	case config.AIProviderAnthropic:
		gen := anthropic.New(anthropic.Config{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: int64(cfg.MaxTokens),
		}, logger)
		logger.Info("ai provider configured", slog.String("provider", cfg.Provider), slog.String("model", cfg.Model))
		return gen, noop, nil

	case config.AIProviderVertex:
		gen, err := vertex.New(ctx, vertex.Config{
			Project:         cfg.VertexProject,
			Location:        cfg.VertexLocation,
			CredentialsFile: cfg.VertexCredentialsFile,
			Model:           cfg.Model,
			MaxTokens:       int32(cfg.MaxTokens),
		}, logger)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("ai provider configured", slog.String("provider", cfg.Provider), slog.String("model", cfg.Model))
		return gen, gen.Close, nil
	}

	return nil, noop, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
}
