package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	"github.com/heartmarshall/carbontrack-backend/internal/service/coach"
)

const (
	wsReadLimit    = 64 << 10
	wsWriteTimeout = 10 * time.Second
	wsPongTimeout  = 60 * time.Second
	wsPingInterval = wsPongTimeout * 9 / 10
	// defaultWSHistory is how many turns a connection remembers when no
	// limit is configured.
	defaultWSHistory = 20
)

// Websocket message types.
const (
	wsTypeChat       = "chat"
	wsTypeSuggest    = "suggest"
	wsTypeReply      = "reply"
	wsTypeSuggestion = "suggestion"
	wsTypeError      = "error"
)

type wsUpgrader interface {
	Upgrade(w http.ResponseWriter, r *http.Request, responseHeader http.Header) (*websocket.Conn, error)
}

func newUpgrader(allowedOrigins string) *websocket.Upgrader {
	origins := make(map[string]struct{})
	allowAny := false
	for _, o := range strings.Split(allowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAny = true
		}
		origins[o] = struct{}{}
	}

	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowAny {
				return true
			}
			_, ok := origins[origin]
			return ok
		},
	}
}

// wsInbound is a client frame: {"type": "chat", "data": {"message": "..."}}.
type wsInbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type wsChatData struct {
	Message string `json:"message"`
}

type wsOutbound struct {
	Type    string `json:"type"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ChatWS handles GET /api/coach/ws. The connection keeps its own history,
// so clients send only the new message.
func (h *CoachHandler) ChatWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		h.log.WarnContext(r.Context(), "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go keepAlive(conn, done)

	session := &wsSession{handler: h, conn: conn, r: r}
	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.WarnContext(r.Context(), "websocket read failed", slog.String("error", err.Error()))
			}
			return
		}
		if err := session.handle(in); err != nil {
			h.log.WarnContext(r.Context(), "websocket write failed", slog.String("error", err.Error()))
			return
		}
	}
}

func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				return
			}
		}
	}
}

type wsSession struct {
	handler *CoachHandler
	conn    *websocket.Conn
	r       *http.Request
	history []domain.ChatTurn
}

// handle answers one client frame. Only write failures are returned; every
// other problem is reported to the client as an error frame.
func (s *wsSession) handle(in wsInbound) error {
	ctx := s.r.Context()

	switch in.Type {
	case wsTypeChat:
		var data wsChatData
		if err := json.Unmarshal(in.Data, &data); err != nil {
			return s.send(wsOutbound{Type: wsTypeError, Message: "invalid chat payload"})
		}

		reply, err := s.handler.svc.Chat(ctx, coach.ChatInput{Message: data.Message, History: s.history})
		if err != nil {
			return s.send(wsOutbound{Type: wsTypeError, Message: s.errorMessage(err)})
		}

		s.remember(data.Message, reply.Content)
		return s.send(wsOutbound{Type: wsTypeReply, Data: chatResponse{Content: reply.Content, Source: reply.Source}})

	case wsTypeSuggest:
		q, err := s.handler.svc.SuggestQuestion(ctx)
		if err != nil {
			return s.send(wsOutbound{Type: wsTypeError, Message: s.errorMessage(err)})
		}
		return s.send(wsOutbound{Type: wsTypeSuggestion, Data: suggestionResponse{Question: q}})

	default:
		return s.send(wsOutbound{Type: wsTypeError, Message: "unknown message type"})
	}
}

func (s *wsSession) remember(message, reply string) {
	s.history = append(s.history,
		domain.ChatTurn{Role: domain.ChatRoleUser, Content: strings.TrimSpace(message)},
		domain.ChatTurn{Role: domain.ChatRoleAssistant, Content: reply},
	)
	if n, limit := len(s.history), s.handler.maxHistory; n > limit {
		s.history = s.history[n-limit:]
	}
	for len(s.history) > 0 && s.history[0].Role != domain.ChatRoleUser {
		s.history = s.history[1:]
	}
}

func (s *wsSession) errorMessage(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	default:
		s.handler.log.ErrorContext(s.r.Context(), "coach websocket error", slog.String("error", err.Error()))
		return "internal server error"
	}
}

func (s *wsSession) send(msg wsOutbound) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return s.conn.WriteJSON(msg)
}
