package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MikeSquared-Agency/datebook/internal/llm"
	"github.com/MikeSquared-Agency/datebook/internal/transcript"
)

// Completer abstracts the completion provider. Uses llm package types; the
// concrete HTTP client lives there.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, history, userMessage string, tools []llm.Tool) (*llm.Completion, error)
}

// Orchestrator runs one chat turn end to end: record the question, window the
// history, ask the completion provider, dispatch whatever operation it names,
// and record the answer. Single synchronous call chain, at most one provider
// call and one backend call per turn, no retries.
type Orchestrator struct {
	completer   Completer
	calendar    CalendarAPI
	store       transcript.Store
	tokenBudget int
}

func New(completer Completer, cal CalendarAPI, store transcript.Store, tokenBudget int) *Orchestrator {
	return &Orchestrator{
		completer:   completer,
		calendar:    cal,
		store:       store,
		tokenBudget: tokenBudget,
	}
}

// Respond processes one user utterance and returns the natural-language
// answer. A returned error means the turn could not complete at all (store or
// completion provider failure) and the transport layer should answer non-2xx;
// calendar operation failures are folded into the answer instead.
func (o *Orchestrator) Respond(ctx context.Context, userKey, question string) (string, error) {
	exists, err := o.store.Exists(ctx, userKey)
	if err != nil {
		return "", fmt.Errorf("check transcript: %w", err)
	}
	if !exists {
		slog.Debug("bot: starting new conversation", "user_key", userKey)
	}

	if err := o.store.Append(ctx, userKey, question); err != nil {
		return "", fmt.Errorf("append turn: %w", err)
	}

	turns, err := o.store.History(ctx, userKey)
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}
	// The newest turn is the live question, not context.
	history := transcript.Window(turns, false, o.tokenBudget)

	completion, err := o.completer.Complete(ctx, systemPrompt, history, question, declaredTools())
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}

	res := o.dispatch(ctx, completion, question)
	if res.err != nil {
		slog.Warn("bot: operation did not succeed",
			"user_key", userKey,
			"kind", res.err.Kind.String(),
			"detail", res.err.Detail,
		)
	}

	if err := o.store.Complete(ctx, userKey, res.answer); err != nil {
		return "", fmt.Errorf("record answer: %w", err)
	}

	slog.Info("bot: turn answered",
		"user_key", userKey,
		"answer_len", len(res.answer),
		"tool_calls", len(completion.ToolCalls),
	)
	return res.answer, nil
}
