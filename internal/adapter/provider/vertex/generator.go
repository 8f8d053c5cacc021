// Package vertex generates text with Gemini models on Google Vertex AI.
package vertex

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-1.5-flash"

// Config holds the Vertex AI settings.
type Config struct {
	Project         string
	Location        string
	CredentialsFile string
	Model           string
	MaxTokens       int32
}

// Generator sends prompts to a Gemini model.
type Generator struct {
	client    *genai.Client
	model     string
	maxTokens int32
	log       *slog.Logger
}

// New creates the Vertex AI client. Close must be called on shutdown.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Generator, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := genai.NewClient(ctx, cfg.Project, cfg.Location, opts...)
	if err != nil {
		return nil, fmt.Errorf("vertex: create client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Generator{
		client:    client,
		model:     model,
		maxTokens: cfg.MaxTokens,
		log:       logger.With("adapter", "vertex"),
	}, nil
}

// Generate replays the prompt as a chat session and returns the text of the
// first candidate.
func (g *Generator) Generate(ctx context.Context, prompt domain.Prompt) (string, error) {
	if err := prompt.Validate(); err != nil {
		return "", fmt.Errorf("vertex: %w", err)
	}

	model := g.client.GenerativeModel(g.model)
	if g.maxTokens > 0 {
		model.SetMaxOutputTokens(g.maxTokens)
	}
	if prompt.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(prompt.System)}}
	}

	history, last := splitTurns(prompt.Turns)
	cs := model.StartChat()
	cs.History = history

	g.log.DebugContext(ctx, "vertex request",
		slog.String("model", g.model),
		slog.Int("turns", len(prompt.Turns)),
	)

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", fmt.Errorf("vertex: send message: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("vertex: empty response")
	}
	return text, nil
}

// Close releases the underlying gRPC connection.
func (g *Generator) Close() error {
	return g.client.Close()
}

// splitTurns converts every turn but the last into chat history. Gemini
// names the assistant role "model".
func splitTurns(turns []domain.ChatTurn) ([]*genai.Content, string) {
	history := make([]*genai.Content, 0, len(turns)-1)
	for _, t := range turns[:len(turns)-1] {
		role := "user"
		if t.Role == domain.ChatRoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(t.Content)},
		})
	}
	return history, turns[len(turns)-1].Content
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}
