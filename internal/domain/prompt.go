package domain

// ChatTurn is one message of a conversation with the coach.
type ChatTurn struct {
	Role    ChatRole
	Content string
}

// Prompt is a request for an external text generator.
// Turns must end with a user turn.
type Prompt struct {
	System string
	Turns  []ChatTurn
}

// NewUserPrompt builds a single-turn prompt without a system message.
func NewUserPrompt(text string) Prompt {
	return Prompt{Turns: []ChatTurn{{Role: ChatRoleUser, Content: text}}}
}

// Validate reports whether the prompt can be sent to a generator.
func (p Prompt) Validate() error {
	if len(p.Turns) == 0 {
		return NewValidationError("turns", "required")
	}
	for _, t := range p.Turns {
		if !t.Role.IsValid() {
			return NewValidationError("turns", "unknown role "+string(t.Role))
		}
	}
	if p.Turns[len(p.Turns)-1].Role != ChatRoleUser {
		return NewValidationError("turns", "last turn must be from the user")
	}
	return nil
}
