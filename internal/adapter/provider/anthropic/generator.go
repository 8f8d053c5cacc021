// Package anthropic generates text with the Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-3-5-haiku-latest"

// Config holds the generator settings.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int64
}

// Generator sends prompts to Claude.
type Generator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// New creates a Generator. Extra request options are appended after the API
// key, which lets tests point the client at a local server.
func New(cfg Config, logger *slog.Logger, opts ...option.RequestOption) *Generator {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	all := append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, opts...)

	return &Generator{
		client:    anthropic.NewClient(all...),
		model:     model,
		maxTokens: cfg.MaxTokens,
		log:       logger.With("adapter", "anthropic"),
	}
}

// Generate returns the concatenated text blocks of Claude's reply.
func (g *Generator) Generate(ctx context.Context, prompt domain.Prompt) (string, error) {
	if err := prompt.Validate(); err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages:  toMessages(prompt.Turns),
	}
	if prompt.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: prompt.System}}
	}

	g.log.DebugContext(ctx, "anthropic request",
		slog.String("model", g.model),
		slog.Int("turns", len(prompt.Turns)),
	)

	msg, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic: messages api call: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("anthropic: empty response")
	}

	return text, nil
}

func toMessages(turns []domain.ChatTurn) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(turns))
	for _, t := range turns {
		block := anthropic.NewTextBlock(t.Content)
		if t.Role == domain.ChatRoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
	}
	return out
}
