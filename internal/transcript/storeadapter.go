package transcript

import (
	"context"

	"github.com/MikeSquared-Agency/datebook/internal/store"

	"github.com/google/uuid"
)

// StoreAdapter wraps *store.Store to satisfy the Store interface, converting
// store.TurnRow to transcript.Turn.
type StoreAdapter struct {
	s *store.Store
}

// NewStoreAdapter creates a StoreAdapter from a *store.Store.
func NewStoreAdapter(s *store.Store) *StoreAdapter {
	return &StoreAdapter{s: s}
}

func (a *StoreAdapter) History(ctx context.Context, userKey string) ([]Turn, error) {
	rows, err := a.s.GetTurns(ctx, userKey)
	if err != nil {
		return nil, err
	}
	turns := make([]Turn, len(rows))
	for i, r := range rows {
		turns[i] = Turn{
			TurnID:      r.TurnID,
			UserMessage: r.UserMessage,
			CreatedAt:   r.CreatedAt,
		}
		if r.BotMessage != nil {
			turns[i].BotMessage = *r.BotMessage
		}
	}
	return turns, nil
}

func (a *StoreAdapter) Append(ctx context.Context, userKey, userMessage string) error {
	return a.s.InsertTurn(ctx, uuid.New().String(), userKey, userMessage)
}

func (a *StoreAdapter) Complete(ctx context.Context, userKey, botMessage string) error {
	return a.s.CompleteTurn(ctx, userKey, botMessage)
}

func (a *StoreAdapter) Exists(ctx context.Context, userKey string) (bool, error) {
	return a.s.TurnsExist(ctx, userKey)
}
