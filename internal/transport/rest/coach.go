package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/internal/service/coach"
)

type coachService interface {
	Chat(ctx context.Context, input coach.ChatInput) (*coach.Reply, error)
	SuggestQuestion(ctx context.Context) (string, error)
}

// CoachHandler serves /api/coach over plain HTTP and websocket.
type CoachHandler struct {
	svc        coachService
	log        *slog.Logger
	upgrader   wsUpgrader
	maxHistory int
}

// NewCoachHandler creates a CoachHandler. allowedOrigins is the CORS origin
// list, reused to check websocket handshakes. maxHistory caps the turns a
// websocket connection replays to the coach.
func NewCoachHandler(svc coachService, logger *slog.Logger, allowedOrigins string, maxHistory int) *CoachHandler {
	if maxHistory <= 0 {
		maxHistory = defaultWSHistory
	}
	return &CoachHandler{
		svc:        svc,
		log:        logger.With("handler", "coach"),
		upgrader:   newUpgrader(allowedOrigins),
		maxHistory: maxHistory,
	}
}

type chatTurnMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message string            `json:"message"`
	History []chatTurnMessage `json:"history"`
}

type chatResponse struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

type suggestionResponse struct {
	Question string `json:"question"`
}

func (req chatRequest) toInput() coach.ChatInput {
	history := make([]domain.ChatTurn, 0, len(req.History))
	for _, t := range req.History {
		history = append(history, domain.ChatTurn{Role: domain.ChatRole(t.Role), Content: t.Content})
	}
	return coach.ChatInput{Message: req.Message, History: history}
}

// Chat handles POST /api/coach/chat.
func (h *CoachHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleBodyError(h.log, w, r, err)
		return
	}

	reply, err := h.svc.Chat(r.Context(), req.toInput())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Content: reply.Content, Source: reply.Source})
}

// Suggestion handles GET /api/coach/suggestion. The question is empty when
// the user has no footprint data yet.
func (h *CoachHandler) Suggestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.SuggestQuestion(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestionResponse{Question: q})
}
