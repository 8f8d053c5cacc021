package coach

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// ChatInput is one user message plus the conversation so far.
type ChatInput struct {
	Message string
	History []domain.ChatTurn
}

// Validate checks the message against the configured limits.
func (i ChatInput) Validate(maxLength, maxHistory int) error {
	var errs []domain.FieldError

	msg := strings.TrimSpace(i.Message)
	if msg == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}
	if maxLength > 0 && utf8.RuneCountInString(msg) > maxLength {
		errs = append(errs, domain.FieldError{Field: "message", Message: fmt.Sprintf("max %d characters", maxLength)})
	}
	if maxHistory > 0 && len(i.History) > maxHistory {
		errs = append(errs, domain.FieldError{Field: "history", Message: fmt.Sprintf("max %d turns", maxHistory)})
	}
	for _, turn := range i.History {
		if !turn.Role.IsValid() {
			errs = append(errs, domain.FieldError{Field: "history", Message: "unknown role " + string(turn.Role)})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
