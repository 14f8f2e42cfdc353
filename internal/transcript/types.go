package transcript

import "time"

// Turn is one exchange in a conversation: the user's message and the
// assistant's eventual reply. BotMessage stays empty until the orchestrator
// has produced an answer for the turn.
type Turn struct {
	TurnID      string    `json:"turn_id"`
	UserMessage string    `json:"user_message"`
	BotMessage  string    `json:"bot_message"`
	CreatedAt   time.Time `json:"created_at"`
}

// Answered reports whether the assistant reply has been recorded.
func (t Turn) Answered() bool {
	return t.BotMessage != ""
}
