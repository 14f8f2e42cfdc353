package transcript

import "strings"

// Markers used to render a turn into prompt context. The completion provider
// sees the windowed history as a single system message, so the exact framing
// only has to be consistent, not model-native.
const (
	userMarker      = "<|im_start|>user"
	assistantMarker = "<|im_start|>assistant"
)

// Window renders a transcript into a bounded text block for use as
// conversational context, oldest turn first. Accumulation walks newest to
// oldest and stops once the block exceeds four characters per budgeted token,
// so the result is at most 4*tokenBudget characters plus one turn of slack.
// Older turns beyond the budget are dropped, never summarized.
//
// When includeLast is false the newest turn is excluded: it is the live user
// input for the current request, not context.
func Window(turns []Turn, includeLast bool, tokenBudget int) string {
	if !includeLast && len(turns) > 0 {
		turns = turns[:len(turns)-1]
	}

	maxChars := tokenBudget * 4

	var history string
	for i := len(turns) - 1; i >= 0; i-- {
		var b strings.Builder
		b.WriteString(userMarker)
		b.WriteByte('\n')
		b.WriteString(turns[i].UserMessage)
		b.WriteByte('\n')
		b.WriteString(assistantMarker)
		b.WriteByte('\n')
		b.WriteString(turns[i].BotMessage)
		b.WriteByte('\n')
		history = b.String() + history

		if len(history) > maxChars {
			break
		}
	}
	return history
}
